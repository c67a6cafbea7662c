// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package pool provides byte chunk recycling for sink write paths.
package pool
