package main

import (
	"os"

	"github.com/paperscout/paperscout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
