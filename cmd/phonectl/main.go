package main

import (
	"os"

	"phonebridge/cmd/phonectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
