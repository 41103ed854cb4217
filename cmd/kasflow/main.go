package main

import (
	"os"

	"github.com/kasflow-dev/kasflow/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
