// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values used across the hioload-sink library.

package api

import "fmt"

var (
	ErrSinkClosed         = fmt.Errorf("sink is closed")
	ErrNotInitialized     = fmt.Errorf("sink not initialized")
	ErrAlreadyInitialized = fmt.Errorf("sink already initialized")
	ErrAlreadyRegistered  = fmt.Errorf("descriptor already registered")
	ErrNotRegistered      = fmt.Errorf("descriptor not registered")
	ErrNotSupported       = fmt.Errorf("operation not supported on this platform")
)
