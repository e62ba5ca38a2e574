package app

import (
	"context"
	"fmt"
	"log"

	"contextify/internal/assemble"
	"contextify/internal/gateway/config"
	"contextify/internal/gateway/handler"
	"contextify/internal/gateway/repository/sessionstore"
	"contextify/internal/gateway/server"
	"contextify/internal/gateway/service/chat"
	llmclient "contextify/internal/llm/client"
	llmmiddleware "contextify/internal/llm/middleware"
	"contextify/internal/workspace"
)

type App struct {
	server   *server.Server
	client   llmclient.TextClient
	sessions *sessionstore.Store
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	ws := workspace.NewLenient(cfg.Workspace.Roots...)
	if ws.Empty() {
		log.Printf("workspace: no roots configured; file references will not resolve")
	}
	asm := assemble.New(ws, nil)

	client, err := buildClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessions := sessionstore.NewFromEnv(cfg.Session.Path)
	archive := initTranscriptStore(cfg)
	chatSvc := chat.New(ws, asm, client, sessions, archive, cfg.LLM.Timeout)

	chatHandler := handler.NewChatHandler(chatSvc)
	transcriptHandler := handler.NewTranscriptHandler(archive)

	// Routing & Server
	mux := server.NewMux(chatHandler, transcriptHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server:   srv,
		client:   client,
		sessions: sessions,
	}, nil
}

func buildClient(ctx context.Context, cfg *config.Config) (llmclient.TextClient, error) {
	base, err := llmclient.DefaultCatalog().Build(ctx, cfg.LLM.Provider, cfg.LLM.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to build llm client: %w", err)
	}
	mws := []llmmiddleware.Middleware{
		llmmiddleware.Retry(3, 0),
		llmmiddleware.WithLogging(nil),
		llmmiddleware.WithBudget(),
	}
	if cfg.LLM.RPS > 0 {
		mws = append(mws, llmmiddleware.RateLimit(float64(cfg.LLM.RPS), cfg.LLM.RPS))
	}
	return llmmiddleware.Wrap(base, mws...), nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.sessions != nil {
		_ = a.sessions.Close()
	}
	return err
}
