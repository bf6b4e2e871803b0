// go2opsin - chemical names to structures via OPSIN

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go2opsin/go2opsin/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
