package main

import (
	"os"

	"github.com/chrisBokotaII/Nettranscongov2/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
