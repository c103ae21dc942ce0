package main

import (
	"os"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
