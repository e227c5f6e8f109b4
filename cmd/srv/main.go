package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var server srv

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.loadApp()
	if err := server.app.RunContext(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}
