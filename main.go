package main

import (
	"os"

	"github.com/abhisek/quizzical/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
