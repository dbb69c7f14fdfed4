package main

import (
	"os"

	"github.com/runger/bistro/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
