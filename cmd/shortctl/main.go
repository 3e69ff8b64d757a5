package main

import (
	"context"
	"log"

	"github.com/GevorkovG/go-shortener-digest/cmd/shortctl/cli"
	"github.com/GevorkovG/go-shortener-digest/internal/logger"
)

func main() {
	if err := logger.Initialize("warn"); err != nil {
		log.Fatal(err)
	}

	if err := cli.NewRootCmd(cli.OpenFromEnv).ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
