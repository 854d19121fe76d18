package main

import (
	"os"

	"github.com/jmcampanini/you-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
