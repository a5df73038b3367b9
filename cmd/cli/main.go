package main

import (
	"fmt"
	"os"

	"github.com/SergioM098/Monitoring-proyect/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
