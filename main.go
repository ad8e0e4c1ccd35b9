package main

import (
	"os"

	"github.com/CBA-Consult/scev-self-charging-electric-vehicle-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
