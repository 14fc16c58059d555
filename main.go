package main

import (
	"os"

	"github.com/ananya/studydeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
