package main

import (
	"os"

	"github.com/koustreak/sqlconnect/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
