package main

import (
	"os"

	"github.com/melih-ucgun/zguest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
