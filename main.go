package main

import (
	"context"
	"os"

	"filescope/internal/cli"
)

func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], cli.DefaultStreams()))
}
