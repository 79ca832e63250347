// Command pageready runs the page-ready routine over HTML read from stdin
// and prints the result: the flash banner, focus and sparkline rendered in.
//
//	pageready -flash 'Your message was successfully sent.' < index.html
//	JAR_DSN=file:cookies.db pageready -path /books < book.html
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/flashkit/internal/cmd/pageready"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := pageready.ParseConfig(flag.CommandLine, os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := pageready.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
