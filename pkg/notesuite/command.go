package notesuite

import "context"

// Command represents a discrete application operation. Commands are produced
// by Parse and executed through the matching method on [App].
type Command interface {
	// Name returns the CLI sub-command this command handles.
	Name() string
}

// RunCommand starts the HTTP server.
type RunCommand struct{}

func (c *RunCommand) Name() string { return "run" }

// MigrateCommand creates or updates the database schema. Safe to run
// repeatedly; only missing schema elements are added.
type MigrateCommand struct{}

func (c *MigrateCommand) Name() string { return "migrate" }

// Migrate applies schema migrations to the configured store.
func (a *App) Migrate(ctx context.Context, cmd *MigrateCommand) error {
	a.log.Info().Msg("running migrations")
	if err := a.store.Migrate(ctx); err != nil {
		return err
	}
	a.log.Info().Msg("migrations complete")
	return nil
}
