//go:build !windows

package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/zdscale/redislifecycle"
)

// runProcess replaces the launcher's process image with the server. The
// server is invoked with the rendered configuration file as its only
// argument; its exit status becomes the program's exit status.
func runProcess(serverPath, configPath string, environ []string) {
	err := unix.Exec(serverPath, []string{serverPath, configPath}, environ)

	// Exec only returns on failure.
	launchErr := &redislifecycle.LaunchError{Binary: serverPath, Err: err}
	fmt.Fprintf(os.Stderr, "%s\n", launchErr)
	os.Exit(redislifecycle.ExitCodeFromError(launchErr))
}
