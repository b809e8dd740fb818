package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var FS embed.FS

const dir = "sql"

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Run applies all unapplied migrations from the embedded FS to the database.
// Applied versions are tracked by goose in the goose_db_version table.
func Run(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configure(); err != nil {
		return err
	}

	before, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}
	if after != before {
		slog.Info("migrations applied", "from", before, "to", after)
	} else {
		slog.Debug("schema up to date", "version", after)
	}
	return nil
}

// Version reports the latest applied migration version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := configure(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func configure() error {
	goose.SetBaseFS(FS)
	goose.SetLogger(slogLogger{})
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// slogLogger routes goose output through slog at debug level.
type slogLogger struct{}

func (slogLogger) Printf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "goose")
}

func (slogLogger) Fatalf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "goose")
}
