//go:build windows && debug

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// SetupConsole attaches a console to GUI-subsystem debug builds so log output
// and listings are visible.
func SetupConsole() {
	procAllocConsole := windows.NewLazySystemDLL("kernel32.dll").NewProc("AllocConsole")
	r0, _, err0 := procAllocConsole.Call()
	if r0 == 0 { // probably already has a console
		fmt.Printf("Could not allocate console: %s. Check build flags..", err0)
		os.Exit(1)
	}

	hout, err1 := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE)
	herr, err2 := windows.GetStdHandle(windows.STD_ERROR_HANDLE)
	if err1 != nil || err2 != nil { // nowhere to print the error
		os.Exit(2)
	}
	os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
}
