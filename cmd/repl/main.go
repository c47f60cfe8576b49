// Package repl runs the banking assistant as an interactive console loop.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/bank-bot/internal/accountservice"
	"github.com/go-petr/bank-bot/internal/botservice"
	"github.com/go-petr/bank-bot/internal/chatservice"
	"github.com/go-petr/bank-bot/internal/gateway"
	"github.com/go-petr/bank-bot/internal/ledgerrepo"
	"github.com/go-petr/bank-bot/internal/middleware"
	"github.com/go-petr/bank-bot/internal/transferservice"
	"github.com/go-petr/bank-bot/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	ledgerRepo := ledgerrepo.NewRepoMem()
	accountService := accountservice.New(ledgerRepo)
	transferService := transferservice.New(ledgerRepo)

	modelGateway, err := gateway.New(config, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create model gateway")
	}

	chatService := chatservice.New(modelGateway, config.ChatHistoryWindow)
	bot := botservice.New(accountService, transferService, chatService)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Welcome to Banking Bot powered by Mistral AI")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Available commands:")
	fmt.Println("  balance <account_id>                    - Check account balance")
	fmt.Println("  transfer <from> <to> <amount>           - Transfer funds")
	fmt.Println("  history <account_id>                    - Recent transactions")
	fmt.Println("  reset                                   - Clear the conversation")
	fmt.Println("  quit                                    - Exit")
	fmt.Println()
	fmt.Println("Or just type a question for the assistant.")
	fmt.Println()

	ctx := logger.WithContext(context.Background())

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if input == "quit" || input == "exit" {
			fmt.Println("Goodbye!")
			break
		}

		if input == "reset" {
			bot.ResetConversation()
			fmt.Println("Conversation reset.")

			continue
		}

		fmt.Println("Bot:", bot.ProcessCommand(ctx, input))
		fmt.Println()
	}
}
