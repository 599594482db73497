package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"

	"github.com/zdscale/redislifecycle"
)

// Windows has no process-image replacement, so the launcher blocks on the
// server, forwards termination signals to it, and exits with its exit code.
func runProcess(serverPath, configPath string, environ []string) {
	cmd := exec.Command(serverPath, configPath)
	cmd.Env = environ
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		launchErr := &redislifecycle.LaunchError{Binary: serverPath, Err: err}
		fmt.Fprintf(os.Stderr, "%s\n", launchErr)
		os.Exit(redislifecycle.ExitCodeFromError(launchErr))
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	go func() {
		for sig := range signals {
			cmd.Process.Signal(sig)
		}
	}()

	err := cmd.Wait()
	signal.Stop(signals)
	close(signals)

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "%s\n", &redislifecycle.LaunchError{Binary: serverPath, Err: err})
		os.Exit(redislifecycle.ExitCodeLaunchFailure)
	}

	os.Exit(0)
}
