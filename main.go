package main

import (
	"os"

	"github.com/pranav/snapquest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
