package main

import (
	"os"

	"github.com/metaphox/kaleido/cmd/kaleido/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
