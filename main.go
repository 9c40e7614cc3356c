package main

import (
	"os"

	"github.com/aj-tap/supersqlhunt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
