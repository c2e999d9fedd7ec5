package main

import (
	"os"

	"github.com/rustyeddy/mt5journal/cmd/mt5journal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
