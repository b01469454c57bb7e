package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tranvh/menuboard/internal/api"
	"github.com/tranvh/menuboard/internal/bus"
	"github.com/tranvh/menuboard/internal/db"
	"github.com/tranvh/menuboard/internal/images"
	"github.com/tranvh/menuboard/internal/model"
	"github.com/tranvh/menuboard/internal/storage"
	"github.com/tranvh/menuboard/internal/store"
	"github.com/tranvh/menuboard/internal/version"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	fs := flag.NewFlagSet("menuboard", flag.ContinueOnError)

	var dataDir string
	fs.StringVar(&dataDir, "data", "data", "")
	fs.StringVar(&dataDir, "d", "data", "")

	var imagesDir string
	fs.StringVar(&imagesDir, "images", "public/images", "")
	fs.StringVar(&imagesDir, "i", "public/images", "")

	var addr string
	fs.StringVar(&addr, "addr", ":8080", "")
	fs.StringVar(&addr, "a", ":8080", "")

	var backend string
	fs.StringVar(&backend, "backend", "json", "")
	fs.StringVar(&backend, "b", "json", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "menuboard.sqlite3", "")

	var jwtSecret string
	fs.StringVar(&jwtSecret, "jwt-secret", os.Getenv("JWT_SECRET"), "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: menuboard [flags]

Flags:
  -d, -data <dir>         data directory for the JSON backend (default: data)
  -i, -images <dir>       directory for uploaded images (default: public/images)
  -a, -addr <host:port>   listen address (default: :8080)
  -b, -backend <name>     storage backend, json or sqlite (default: json)
      -db <path>          SQLite database path for -backend sqlite (default: menuboard.sqlite3)
      -jwt-secret <key>   JWT signing key (default: $JWT_SECRET, auto-generated if empty)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Tokens signed with an ephemeral secret die with the process.
	if jwtSecret == "" {
		secret, err := randomString(32)
		if err != nil {
			slog.Error("failed to generate JWT secret", "error", err)
			os.Exit(1)
		}
		jwtSecret = secret
		slog.Info("JWT secret auto-generated, tokens will be invalidated on restart")
	}

	// Select the storage backend.
	var persist storage.Backend
	switch backend {
	case "json":
		jsonDir, err := storage.NewJSONDir(dataDir)
		if err != nil {
			slog.Error("failed to open data directory", "error", err)
			os.Exit(1)
		}
		persist = jsonDir
		slog.Info("storage ready", "backend", "json", "dir", dataDir)
	case "sqlite":
		database, err := db.Open(dbPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := db.EnsureSchema(database); err != nil {
			slog.Error("failed to ensure database schema", "error", err)
			os.Exit(1)
		}
		persist = storage.NewSQLite(database)
		slog.Info("storage ready", "backend", "sqlite", "path", dbPath)
	default:
		fmt.Fprintf(os.Stderr, "unknown backend: %s (want json or sqlite)\n", backend)
		os.Exit(1)
	}

	imageStore, err := images.New(imagesDir)
	if err != nil {
		slog.Error("failed to open images directory", "error", err)
		os.Exit(1)
	}

	broadcaster := bus.New()
	defer broadcaster.Close()

	menuStore, err := store.Open(persist, broadcaster, imageStore)
	if err != nil {
		slog.Error("failed to load menu state", "error", err)
		os.Exit(1)
	}

	users, err := store.OpenUsers(persist)
	if err != nil {
		slog.Error("failed to load users", "error", err)
		os.Exit(1)
	}

	// First run: seed the admin and kitchen accounts with generated
	// passwords, printed once.
	if users.Count() == 0 {
		if err := seedUsers(users); err != nil {
			slog.Error("failed to seed users", "error", err)
			os.Exit(1)
		}
	}

	appVersion := version.String()

	handler := api.LoggingMiddleware(api.NewRouter(api.Config{
		Store:     menuStore,
		Users:     users,
		Bus:       broadcaster,
		Images:    imageStore,
		JWTSecret: jwtSecret,
		Version:   appVersion,
	}))

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// No WriteTimeout: the event stream holds responses open
		// indefinitely.
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr, "version", appVersion)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// seedUsers creates the admin and kitchen accounts with random passwords.
func seedUsers(users *store.Users) error {
	accounts := []struct {
		username string
		role     string
	}{
		{"admin", model.RoleAdmin},
		{"kitchen", model.RoleKitchen},
	}

	fmt.Println("First run, creating accounts:")
	for _, acc := range accounts {
		password, err := randomString(16)
		if err != nil {
			return fmt.Errorf("generating password: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing password: %w", err)
		}
		if err := users.Create(acc.username, string(hash), acc.role); err != nil {
			return fmt.Errorf("creating %s user: %w", acc.username, err)
		}
		fmt.Printf("  %s / %s\n", acc.username, password)
	}
	fmt.Println("Save these passwords, they cannot be recovered.")
	fmt.Println("Each user can change theirs after logging in.")
	return nil
}

// randomString creates a random credential string of the given length.
func randomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
