package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/msomdec/flexbase/internal/config"
	"github.com/msomdec/flexbase/internal/domain"
	"github.com/msomdec/flexbase/internal/filestore"
	"github.com/msomdec/flexbase/internal/repository/sqlite"
	"github.com/msomdec/flexbase/internal/service"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "flexbase",
	Short: "Sneaker collector social network",
	// Running the bare binary starts the web server.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default $FLEXBASE_CONFIG)")

	userCreateCmd.Flags().String("username", "", "username for the new account")
	userCreateCmd.Flags().String("email", "", "email for the new account")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("email")
	userCmd.AddCommand(userCreateCmd)

	rootCmd.AddCommand(serveCmd, migrateCmd, repairFollowsCmd, userCmd)
}

// app holds the opened database and the services built on it.
// The caller must defer app.Close().
type app struct {
	cfg         *config.Config
	db          domain.Database
	auth        *service.AuthService
	social      *service.SocialService
	media       *service.MediaService
	collections *service.CollectionService
	posts       *service.PostService
	profiles    *service.ProfileService
}

// newApp loads configuration, installs the logger, opens and migrates the
// database and wires the services.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	logOpts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	)))

	ttl, err := cfg.TokenLifetime()
	if err != nil {
		return nil, err
	}

	var db domain.Database
	db, err = sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.Debug("database migrations applied", "path", cfg.DatabasePath)

	files, err := filestore.NewFromConfig(ctx, cfg.Media, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create media store: %w", err)
	}

	media := service.NewMediaService(files)
	social := service.NewSocialService(db.Users(), db.Follows())
	collections := service.NewCollectionService(db.Collections(), media)
	posts := service.NewPostService(db.Posts(), media)

	return &app{
		cfg:         cfg,
		db:          db,
		auth:        service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost, ttl),
		social:      social,
		media:       media,
		collections: collections,
		posts:       posts,
		profiles:    service.NewProfileService(db.Users(), social, posts, collections, media),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}
