package main

import (
	"os"

	"github.com/rustyeddy/etfdesk/cmd/etfdesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
