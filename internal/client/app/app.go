// Package app wires the GestureTalk shell together: storage, the session
// store, the feature services and the HTTP server, and runs them until the
// process is told to stop.
package app

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gesturetalk/internal/client/client"
	"github.com/dmitrijs2005/gesturetalk/internal/client/config"
	"github.com/dmitrijs2005/gesturetalk/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/gesturetalk/internal/client/services"
	"github.com/dmitrijs2005/gesturetalk/internal/client/session"
	"github.com/dmitrijs2005/gesturetalk/internal/client/storage"
	"github.com/dmitrijs2005/gesturetalk/internal/client/web"
	"github.com/dmitrijs2005/gesturetalk/internal/filex"
	"github.com/dmitrijs2005/gesturetalk/internal/logging"
)

const (
	cookieKeyLength = 32
	memoryDSN       = ":memory:"
)

type App struct {
	config *config.Config
	logger logging.Logger
	store  *session.Store
	server *http.Server
	db     *sql.DB
}

// NewApp builds the shell from c, logging JSON to stdout.
func NewApp(c *config.Config) (*App, error) {
	return newApp(context.Background(), c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, c.LogLevel)

	app := &App{config: c, logger: logger}

	repo, err := app.openRepository(ctx)
	if err != nil {
		return nil, err
	}

	key, err := cookieKey(c.CookieSecret)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.store = session.NewStore(repo, session.NewSimulatedAuthenticator(c.AuthLatency), logger)

	dict := services.NewDictionary()
	assistant := client.NewGeminiClient(c.GeminiEndpoint, c.GeminiModel, c.GeminiAPIKey, c.ChatTimeout)

	handler, err := web.NewServer(web.Deps{
		Session:    app.store,
		Dictionary: dict,
		Community:  services.NewCommunity(),
		Chat:       services.NewChat(assistant, logger),
		Recognizer: services.NewRecognizer(c.RecognitionDelay),
		Signer:     services.NewSigner(dict),
		VideoCall:  services.NewVideoCall(c.VideoCallBaseURL, c.VideoCallSecret),
		Cookies:    web.NewCookieStore(key),
		Logger:     logger,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("web init error: %w", err)
	}

	app.server = &http.Server{
		Addr:              c.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

func (app *App) openRepository(ctx context.Context) (localstore.Repository, error) {
	if app.config.StorageDriver == config.StorageMemory {
		app.logger.Warn(ctx, "using in-memory storage; the session will not survive a restart")
		return localstore.NewMemoryRepository(), nil
	}

	dsn := app.config.DatabasePath
	if dsn != memoryDSN {
		path, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		dsn = path
	}

	db, err := storage.InitDatabase(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	return localstore.NewSQLiteRepository(db), nil
}

// cookieKey returns the flash cookie signing key. Without a configured
// secret a random key is used, so flashes do not survive a restart.
func cookieKey(secret string) ([]byte, error) {
	if secret != "" {
		return []byte(secret), nil
	}
	key := make([]byte, cookieKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate cookie key: %w", err)
	}
	return key, nil
}

// Handler exposes the routed HTTP handler.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Close releases the database, if one was opened.
func (app *App) Close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(context.Background(), "failed to close database", "error", err)
		}
		app.db = nil
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

// Run restores the session in the background, serves HTTP until ctx is
// cancelled or a termination signal arrives, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.Close()

	stopSignals := app.initSignalHandler(cancelFunc)
	defer stopSignals()

	listener, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", app.config.ListenAddr, err)
	}

	app.logger.Info(ctx, "Starting app...", "address", listener.Addr().String())

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.store.Initialize(ctx); err != nil {
			app.logger.Error(ctx, "session restore failed", "error", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.server.Serve(listener)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	app.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancelShutdown()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "graceful shutdown failed", "error", err)
		_ = app.server.Close()
	}

	cancelFunc()
	wg.Wait()

	if err := app.store.Wait(shutdownCtx); err != nil {
		app.logger.Error(ctx, "sign-in still running at shutdown", "error", err)
	}

	return runErr
}
