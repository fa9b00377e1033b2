//go:build windows

package main

import (
	"log"
	"os"

	"golang.org/x/sys/windows"
)

// setStdinBinary clears ENABLE_PROCESSED_INPUT on stdin's console mode,
// so a stray Ctrl-C/Ctrl-Break byte inside binary archive data read
// from a console isn't intercepted by the driver instead of reaching
// the reader. GetConsoleMode fails with a plain, non-console handle
// (the normal case: openStdin already refused an interactive
// terminal, so this mostly runs against a pipe or redirected file),
// and that failure just means there's no console mode to change.
func setStdinBinary() {
	handle := windows.Handle(os.Stdin.Fd())
	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return
	}
	mode &^= windows.ENABLE_PROCESSED_INPUT
	if err := windows.SetConsoleMode(handle, mode); err != nil {
		log.Printf("cbmls: could not set console mode: %v", err)
	}
}
