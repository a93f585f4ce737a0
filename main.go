package main

import (
	"os"

	"signpost/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.BuildVersion = version
	cmd.BuildCommit = commit
	cmd.BuildDate = date

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
