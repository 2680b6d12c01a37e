package main

import (
	"os"

	"github.com/tagwatch/tagwatch/cmd/tagwatchctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
