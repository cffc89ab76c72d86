package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/restaurant-kitchen/config"
	"github.com/yeremiapane/restaurant-kitchen/database"
	"github.com/yeremiapane/restaurant-kitchen/router"
	"github.com/yeremiapane/restaurant-kitchen/utils"
	"gorm.io/gorm"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the CLI. Errors go to stderr since the logger may not exist yet.
func run(args []string, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "restaurant: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "restaurant",
		Short:         "Kitchen roster service: dish types, dishes and cooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateCookCmd())
	return root
}

// bootstrap loads config, initializes logging and JWT settings, and opens the database.
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	utils.InitLoggerWith(utils.LogOptions{
		Level:        cfg.LogLevel,
		Format:       cfg.LogFormat,
		LogstashURL:  cfg.LogLogstashURL,
		ElasticURL:   cfg.LogElasticURL,
		ElasticIndex: cfg.LogElasticIndex,
	})
	if !cfg.EnvLoaded {
		utils.InfoLogger.Warn(".env file not found, using environment only")
	}
	if cfg.UsesDevSecret() {
		utils.InfoLogger.Warn("JWT_SECRET not set, using development secret")
	}
	utils.ConfigureJWT(cfg.JWTSecret, cfg.JWTTTL)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to connect to database: %v", err)
		return nil, nil, err
	}
	return cfg, db, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				utils.ErrorLogger.Errorf("Failed to AutoMigrate: %v", err)
				return err
			}

			if cfg.GinMode == gin.ReleaseMode || cfg.GinMode == gin.TestMode {
				gin.SetMode(cfg.GinMode)
			}

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           router.SetupRouter(db, cfg),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					utils.ErrorLogger.Error(err)
					return err
				}
				return nil
			case <-ctx.Done():
			}

			utils.InfoLogger.Println("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
