// Package cli implements the interactive terminal runner behind the
// canvass command.
package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/canvass/internal/logging"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Ref       string // path or URL of the survey definition
	SessionID string
	Fresh     bool
	RedisAddr string
	StateDir  string
	SubmitURL string
	Debug     bool

	// Identity of the respondent, attached to the submission.
	Name          string
	Email         string
	PreferredName string
}

// Execute handles the run command logic.
func Execute(ctx context.Context, opts RunOptions) error {
	logger := createLogger(opts.Debug)

	store := ResolveStore(opts.SessionID, opts.RedisAddr, opts.StateDir)
	if opts.Fresh && store != nil {
		// Best effort: a missing session is not an error.
		_ = store.Clear(ctx, opts.SessionID)
	}

	return RunSession(ctx, opts, store, logger)
}

// createLogger configures the application logger. In debug mode it
// writes to Stderr to keep the survey UI on Stdout clean.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// ResetSession clears persisted state for the given session ID.
func ResetSession(sessionID, redisAddr, stateDir string) error {
	store := ResolveStore(sessionID, redisAddr, stateDir)
	if store == nil {
		return nil
	}
	return store.Clear(context.Background(), sessionID)
}
