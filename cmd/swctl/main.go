package main

import (
	"os"

	"github.com/shandysiswandi/gostopwatch/cmd/swctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
