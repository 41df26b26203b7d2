// Command pypircgen generates and checks ~/.pypirc credential files.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pypircgen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
