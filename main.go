package main

import (
	"os"

	"github.com/thenoetrevino/todox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
