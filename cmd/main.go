// Package bankbot provides the HTTP API of the banking assistant bot.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-bot/cmd/httpserver"
	"github.com/go-petr/bank-bot/internal/middleware"
	"github.com/go-petr/bank-bot/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	server, err := httpserver.New(logger, config, nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BANK BOT SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
