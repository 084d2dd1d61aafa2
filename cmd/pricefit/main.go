package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/YuminosukeSato/pricefit/internal/cli"
)

func main() {
	app := cli.NewApp(afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)
	if err := cli.NewRootCommand(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
