package shared

import (
	"context"

	"rentworks/internal/infra/db"
)

// UnitOfWork runs a function inside a database transaction. Within retries
// on serialization failures; everything the callback does through the
// passed DBTX commits or rolls back as one unit.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}
