package main

import (
	"os"

	"github.com/minsu-kang/reclaim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
