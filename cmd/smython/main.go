package main

import (
	"os"

	"github.com/msto63/smython/cmd/smython/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
