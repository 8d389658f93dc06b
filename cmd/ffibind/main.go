package main

import (
	"os"

	"github.com/ffibind/ffibind/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
