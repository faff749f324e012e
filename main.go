package main

import (
	"os"

	"github.com/Piyush2510verma/Language/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
