package wire

import (
	"os"

	"resto-client/internal/adaptor"
	"resto-client/internal/data/repository"
	"resto-client/internal/session"
	"resto-client/internal/sync"
	"resto-client/internal/usecase"
	"resto-client/pkg/restapi"
	"resto-client/pkg/utils"

	"go.uber.org/zap"
)

// App holds the assembled dependency graph.
type App struct {
	Config  *utils.Config
	Log     *zap.Logger
	Session *session.Store
	Sync    *sync.Store
	Repo    *repository.Repository
	Service *usecase.Service
	Console *adaptor.Console
}

// Wiring initializes all dependencies. The session store is built and
// loaded here and passed down explicitly; nothing reaches for it as a
// global.
func Wiring(config *utils.Config, logger *zap.Logger) *App {
	api := restapi.NewClient(config.API.BaseURL, config.API.Timeout, logger)
	repo := repository.NewRepository(api, logger)

	syncStore := sync.NewStore(logger)

	sess := session.NewStore(config.Session.StatePath, logger)
	sess.Load()

	console := adaptor.NewConsole(os.Stdout, logger)
	service := usecase.NewService(repo, config, syncStore, sess, console, logger)

	return &App{
		Config:  config,
		Log:     logger,
		Session: sess,
		Sync:    syncStore,
		Repo:    repo,
		Service: service,
		Console: console,
	}
}
