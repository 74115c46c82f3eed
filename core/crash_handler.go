package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

var cleanup atomic.Pointer[func()]

// SetCleanup registers a restore function run before crash reporting,
// typically the terminal reset. Keeps this package independent of the
// render layer
func SetCleanup(fn func()) {
	cleanup.Store(&fn)
}

// HandleCrash is the unified panic handler: restores the terminal and
// prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := cleanup.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	// Use \r\n for raw mode compatibility to avoid zig-zag output
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()
	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
