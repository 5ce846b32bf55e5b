package migration

import "context"

// Migrator provisions the run history store
type Migrator interface {
	Run(ctx context.Context) error
}
