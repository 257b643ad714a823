package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

var (
	crashMu      sync.Mutex
	crashCleanup func()
	crashHandler = defaultCrashHandler
)

// SetCrashCleanup registers the function that restores the terminal before a crash report
// The binary registers screen.Fini once the screen is initialized
func SetCrashCleanup(fn func()) {
	crashMu.Lock()
	crashCleanup = fn
	crashMu.Unlock()
}

// SetCrashHandler replaces the panic handler used by Go and returns the previous one
func SetCrashHandler(fn func(r any)) (prev func(r any)) {
	crashMu.Lock()
	defer crashMu.Unlock()
	prev = crashHandler
	crashHandler = fn
	return prev
}

// HandleCrash restores the terminal, prints the panic with its stack trace and exits with status 1
func HandleCrash(r any) {
	if r == nil {
		return
	}
	crashMu.Lock()
	h := crashHandler
	crashMu.Unlock()
	h(r)
}

func defaultCrashHandler(r any) {
	crashMu.Lock()
	cleanup := crashCleanup
	crashMu.Unlock()
	if cleanup != nil {
		cleanup()
	}

	writeCrashReport(os.Stderr, r, debug.Stack())
	os.Stderr.Sync()
	os.Exit(1)
}

func writeCrashReport(w io.Writer, r any, stack []byte) {
	fmt.Fprintf(w, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(w, "Stack Trace:\n%s\n", stack)
}

// Go runs a function in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crashing actor task still restores the terminal
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
