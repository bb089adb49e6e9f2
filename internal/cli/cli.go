// Package cli implements the quotes command line subcommands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/subcommands"

	"portfolioquotes/internal/app"
	"portfolioquotes/internal/config"
	"portfolioquotes/internal/logging"
)

// Env is shared by every subcommand.
type Env struct {
	Out io.Writer
	Err io.Writer
	// Open builds the services. The returned func releases them.
	Open func(ctx context.Context) (*app.App, func(), error)
}

// OpenConfig returns an Open func wiring the stack from the config file at
// path (or config.json in the working directory) and the environment.
func OpenConfig(path string) func(ctx context.Context) (*app.App, func(), error) {
	return func(ctx context.Context) (*app.App, func(), error) {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
		cfg.Log.Format = "console"
		log, err := logging.New(cfg.Log)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		a, err := app.New(ctx, cfg, log, nil)
		if err != nil {
			return nil, nil, err
		}
		return a, func() { _ = a.Close(); _ = log.Sync() }, nil
	}
}

// Commands returns the subcommands bound to env.
func Commands(env *Env) []subcommands.Command {
	return []subcommands.Command{
		&quoteCmd{env: env},
		&batchCmd{env: env},
		&companyCmd{env: env},
		&searchCmd{env: env},
		&validateCmd{env: env},
		&invalidateCmd{env: env},
	}
}

func (e *Env) errorf(format string, args ...any) {
	fmt.Fprintf(e.Err, "Error: "+format+"\n", args...)
}

func (e *Env) writeJSON(v any) error {
	enc := json.NewEncoder(e.Out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// run opens the services, calls fn and maps its error to an exit status.
func (e *Env) run(ctx context.Context, fn func(*app.App) error) subcommands.ExitStatus {
	a, done, err := e.Open(ctx)
	if err != nil {
		e.errorf("%v", err)
		return subcommands.ExitFailure
	}
	defer done()
	if err := fn(a); err != nil {
		e.errorf("%v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
