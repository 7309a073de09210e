package main

import (
	"os"

	"blogapi/service"
)

// exit is swapped out by tests.
var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the command named in os.Args and exits non-zero on failure.
func RealMain() {
	cmd := service.NewRootCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		exit(1)
		return
	}
	exit(0)
}
