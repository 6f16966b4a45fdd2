package main

import (
	"os"

	"github.com/abhisek/studynav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
