package main

import (
	"fmt"
	"os"
	"strconv"
)

// fakeserver stands in for redis-server in the launcher tests. It reports
// the arguments and secret-variable visibility it was started with, then
// exits with FAKESERVER_EXIT (default 0).
func main() {
	fmt.Println("fakeserver started")
	fmt.Printf("argc=%d\n", len(os.Args)-1)
	for i, arg := range os.Args[1:] {
		fmt.Printf("arg%d=%s\n", i, arg)
	}

	if value, ok := os.LookupEnv("REDIS_PASS"); ok {
		fmt.Printf("REDIS_PASS=%s\n", value)
	} else {
		fmt.Println("REDIS_PASS unset")
	}

	exitCode := 0
	if value := os.Getenv("FAKESERVER_EXIT"); value != "" {
		var err error
		exitCode, err = strconv.Atoi(value)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad FAKESERVER_EXIT: %s\n", value)
			os.Exit(1)
		}
	}
	os.Exit(exitCode)
}
