// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/bank-bot/internal/accountdelivery"
	"github.com/go-petr/bank-bot/internal/accountservice"
	"github.com/go-petr/bank-bot/internal/botservice"
	"github.com/go-petr/bank-bot/internal/chatdelivery"
	"github.com/go-petr/bank-bot/internal/chatservice"
	"github.com/go-petr/bank-bot/internal/gateway"
	"github.com/go-petr/bank-bot/internal/ledgerrepo"
	"github.com/go-petr/bank-bot/internal/middleware"
	"github.com/go-petr/bank-bot/internal/transferdelivery"
	"github.com/go-petr/bank-bot/internal/transferservice"
	"github.com/go-petr/bank-bot/pkg/configpkg"
	"github.com/go-petr/bank-bot/pkg/decimalpkg"
)

// Server holds the bot facade, handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
	Bot    *botservice.Service
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
// client is the optional primary model channel; nil means REST only.
func New(logger zerolog.Logger, config configpkg.Config, client gateway.ChatClient) (*Server, error) {
	ledgerRepo := ledgerrepo.NewRepoMem()

	accountService := accountservice.New(ledgerRepo)
	transferService := transferservice.New(ledgerRepo)

	modelGateway, err := gateway.New(config, client, logger)
	if err != nil {
		return nil, err
	}

	chatService := chatservice.New(modelGateway, config.ChatHistoryWindow)
	botService := botservice.New(accountService, transferService, chatService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	chatHandler := chatdelivery.NewHandler(chatService, botService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts/:id/balance", accountHandler.GetBalance)
	engine.GET("/accounts/:id/transactions", accountHandler.GetHistory)

	engine.POST("/transfers", transferHandler.Create)

	engine.POST("/chat", chatHandler.Chat)
	engine.GET("/chat/history", chatHandler.History)
	engine.DELETE("/chat", chatHandler.Reset)
	engine.POST("/commands", chatHandler.Command)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("decimal", decimalpkg.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register decimal validator")
		}
	}

	server := &Server{
		Engine: engine,
		Config: config,
		Bot:    botService,
	}

	return server, nil
}
