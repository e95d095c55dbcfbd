package setup

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"forum-server/config"
	"forum-server/db"
	"forum-server/emoji"
	"forum-server/handlers"
	"forum-server/hooks"
	"forum-server/inbox"
	"forum-server/media"
	"forum-server/routes"

	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/mux"
	"golang.org/x/net/netutil"
	"gopkg.in/natefinch/lumberjack.v2"
)

const shutdownTimeout = 20 * time.Second

func MustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	if cfg.IsDevelopment() {
		log.Println("In development mode.")
		redacted := *cfg
		redacted.Server.SessionSecret = "<redacted>"
		redacted.Db.Url = "<redacted>"
		log.Printf("Resolved config:\n%s", spew.Sdump(redacted))
	}

	return cfg
}

// ConfigureLogging tees the standard logger into a size-rotated file when server.log_file is set.
func ConfigureLogging(cfg *config.Config) {
	if cfg.Server.LogFile == "" {
		return
	}

	log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   cfg.Server.LogFile,
		MaxSize:    cfg.Server.LogMaxSizeMb,
		MaxBackups: 5,
		Compress:   true,
	}))
	log.Printf("Logging to %s", cfg.Server.LogFile)
}

func MustInitDb(cfg *config.Config) {
	err := db.Connect(cfg)
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}

	err = db.MigrationsUp(cfg.Migrations.Dir)
	if err != nil {
		log.Fatal("Error running migrations: ", err)
	}
}

func RegisterHooks(cfg *config.Config) {
	hooks.RegisterRateLimits(hooks.Limits{
		ThreadsPerHour:  cfg.Limits.ThreadsPerHour,
		PostsPerHour:    cfg.Limits.PostsPerHour,
		MessagesPerHour: cfg.Limits.MessagesPerHour,
	})
}

// MustInitHandlers builds the shared collaborators and hands them to the handlers package.
func MustInitHandlers(cfg *config.Config) {
	mediaStore, err := media.NewStore(cfg.Media)
	if err != nil {
		log.Fatal("Error initializing media store: ", err)
	}

	renderer := emoji.NewRenderer(cfg.Emoji.Dir, cfg.Emoji.Url)

	handlers.Init(handlers.Deps{
		Sessions: handlers.NewCookieStore(cfg.Server.SessionSecret, cfg.Server.SecureCookies),
		Inbox:    inbox.NewService(inbox.NewDbStore(), renderer, mediaStore),
		Emoji:    renderer,
		Media:    mediaStore,
	})
}

func StartServer(r *mux.Router, cfg *config.Config) {
	routes.AddRoutes(r, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", server.Addr)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.Server.Port, err)
	}
	if cfg.Server.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, cfg.Server.MaxConnections)
	}

	go func() {
		err := server.Serve(listener)
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server on port %s: %v", cfg.Server.Port, err)
		}
	}()
	log.Println("Started server on port " + cfg.Server.Port)

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigTermChan
	log.Println("Shutting down, waiting for in-flight requests...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		log.Printf("Error shutting down server: %v\n", err)
	}

	if db.Conn != nil {
		db.Conn.Close()
	}

	log.Println("Server stopped")
}
