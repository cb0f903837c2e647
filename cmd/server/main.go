package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/auth"
	"github.com/studyhub/backend/internal/catalog"
	"github.com/studyhub/backend/internal/config"
	"github.com/studyhub/backend/internal/database"
	"github.com/studyhub/backend/internal/mirror"
	"github.com/studyhub/backend/internal/userdata"
)

const shutdownTimeout = 10 * time.Second

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "studyhub-server",
		Short:         "StudyHub HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx)
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Println("[server] WARNING: using the development JWT secret; set JWT_SECRET in production")
	}

	// Content
	source, err := catalog.NewSource(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if cfg.Content.Dir != "" && cfg.Content.Watch {
		go func() {
			if err := source.Watch(ctx); err != nil {
				log.Printf("[catalog] watch stopped: %v", err)
			}
		}()
	}

	// Storage
	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	var mir *mirror.Client
	if cfg.Mirror.BaseURL != "" {
		mir = mirror.New(cfg.Mirror.BaseURL, mirror.WithTimeout(cfg.Mirror.Timeout()), mirror.WithToken(cfg.Mirror.Token))
		defer mir.Wait()
		log.Printf("[server] mirroring user data to %s", cfg.Mirror.BaseURL)
	}

	a := newApp(source, store, mir, auth.NewSigner(cfg.Auth.JWTSecret), cfg.Database.Driver)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           a.handler(cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (userdata.Store, func(), error) {
	if cfg.Driver == database.DriverMemory {
		log.Println("[server] using in-memory storage; user data is lost on restart")
		return userdata.NewMemoryStore(), func() {}, nil
	}

	opts := databaseOptions(cfg)
	db, err := database.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(opts); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	log.Printf("[server] connected to %s", cfg.Driver)
	return userdata.NewSQLStore(db), func() { db.Close() }, nil
}

func databaseOptions(cfg config.DatabaseConfig) database.Options {
	return database.Options{
		Driver:          cfg.Driver,
		URL:             cfg.URL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
		Attempts:        cfg.ConnectAttempts,
	}
}
