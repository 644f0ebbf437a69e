package main

import (
	"os"

	"github.com/alta-drill/alta/cmd"
)

func main() {
	// cobra prints the error itself.
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
