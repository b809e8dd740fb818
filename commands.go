package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/msomdec/flexbase/internal/handler"
	"github.com/msomdec/flexbase/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	// Ten login or registration attempts per IP, refilled at one every six seconds.
	limiter := service.NewTokenBucket(1.0/6, 10)
	defer limiter.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:         a.auth,
		Social:       a.social,
		Profiles:     a.profiles,
		Collections:  a.collections,
		Posts:        a.posts,
		Media:        a.media,
		AuthLimiter:  limiter,
		CookieSecure: a.cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           handler.Wrap(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr, "media_backend", a.cfg.Media.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", a.cfg.DatabasePath)
		return nil
	},
}

var repairFollowsCmd = &cobra.Command{
	Use:   "repair-follows",
	Short: "Recompute follower and following counters from the follow edges",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		fixed, err := a.social.RepairCounts(cmd.Context())
		if err != nil {
			return fmt.Errorf("repair follow counts: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Repaired counters on %d user(s)\n", fixed)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")

		password, err := readPassword(cmd)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.auth.Register(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", user.Username, user.ID)
		return nil
	},
}

// readPassword prompts without echo on a terminal and otherwise reads one
// line from stdin, so the command also works in scripts.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && len(line) == 0 {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
