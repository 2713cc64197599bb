package main

import (
	"os"

	"github.com/Phyquie/textquiz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
