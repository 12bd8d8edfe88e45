package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// crashReset restores the screen before the stack trace is printed
var crashReset atomic.Pointer[func()]

// SetCrashReset registers the screen restore hook used by HandleCrash
// Pass nil to clear
func SetCrashReset(fn func()) {
	if fn == nil {
		crashReset.Store(nil)
		return
	}
	crashReset.Store(&fn)
}

// HandleCrash is the unified panic handler that resets the screen and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := crashReset.Load(); fn != nil {
		(*fn)()
	}

	// Use \r\n for raw mode compatibility to avoid zig-zag output
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCAMO CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Guard wraps an errgroup task with panic recovery
// Use this for every host goroutine so the terminal is restored on crash
func Guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		return fn()
	}
}
