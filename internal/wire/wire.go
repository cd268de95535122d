// Package wire provides dependency injection for the sketch
// application. It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/example/sketch/internal/adapters/anthropic"
	cliadapter "github.com/example/sketch/internal/adapters/cli"
	"github.com/example/sketch/internal/adapters/sqlite"
	"github.com/example/sketch/internal/app"
	"github.com/example/sketch/internal/config"
	"github.com/example/sketch/internal/core/canvas"
	"github.com/example/sketch/internal/core/fuzzy"
	"github.com/example/sketch/internal/db"
	"github.com/example/sketch/internal/ports/primary"
	"github.com/example/sketch/internal/ports/secondary"
)

var (
	cfg                 *config.Config
	spaceService        primary.SpaceService
	canvasService       primary.CanvasService
	conversationService primary.ConversationService
	activityLog         secondary.ActivityLog
	once                sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// SpaceService returns the singleton SpaceService instance.
func SpaceService() primary.SpaceService {
	once.Do(initServices)
	return spaceService
}

// CanvasService returns the singleton CanvasService instance.
func CanvasService() primary.CanvasService {
	once.Do(initServices)
	return canvasService
}

// ConversationService returns the singleton ConversationService instance.
func ConversationService() primary.ConversationService {
	once.Do(initServices)
	return conversationService
}

// ActivityLog returns the singleton activity log.
func ActivityLog() secondary.ActivityLog {
	once.Do(initServices)
	return activityLog
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db.Configure(cfg.DataDir)

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Secondary adapters
	spaceRepo := sqlite.NewSpaceRepository(database)
	activityLog = sqlite.NewActivityLogRepository(database)
	transport := anthropic.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)

	// Core engine
	engine := canvas.NewEngine(fuzzy.NewMatcher())

	// Services (primary port implementations)
	spaceService = app.NewSpaceService(spaceRepo, activityLog)
	canvasService = app.NewCanvasService(spaceRepo, engine, activityLog)
	conversationService = app.NewConversationService(spaceRepo, transport, engine, activityLog)
}

// SpaceAdapter returns a new SpaceAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SpaceAdapter() *cliadapter.SpaceAdapter {
	return SpaceAdapterWithOutput(os.Stdout)
}

// SpaceAdapterWithOutput returns a new SpaceAdapter writing to the given output.
func SpaceAdapterWithOutput(out io.Writer) *cliadapter.SpaceAdapter {
	once.Do(initServices)
	return cliadapter.NewSpaceAdapter(spaceService, out)
}

// ChatAdapter returns a new ChatAdapter writing to stdout.
func ChatAdapter() *cliadapter.ChatAdapter {
	return ChatAdapterWithOutput(os.Stdout)
}

// ChatAdapterWithOutput returns a new ChatAdapter writing to the given output.
func ChatAdapterWithOutput(out io.Writer) *cliadapter.ChatAdapter {
	once.Do(initServices)
	return cliadapter.NewChatAdapter(conversationService, out)
}

// CanvasAdapter returns a new CanvasAdapter writing to stdout.
func CanvasAdapter() *cliadapter.CanvasAdapter {
	return cliadapter.NewCanvasAdapter(os.Stdout)
}
