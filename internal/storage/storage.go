package storage

import (
	"context"
	"errors"

	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// ErrRegistrationNotFound reports a lookup for a registration id that was
// never issued. Handlers map it to 404.
var ErrRegistrationNotFound = errors.New("registration not found")

// Store is the persistence boundary shared by the ingestion and archive
// services. PostgresStore is the durable implementation; MemoryStore backs
// the service when the database is unreachable.
//
// SaveTestResult does not verify the referenced registration: callers must
// look it up first and treat ErrRegistrationNotFound as a rejection. That
// lookup-before-insert is the referential integrity check of this system.
type Store interface {
	// SaveRegistration persists a new registration. CreatedAt is stamped at
	// write time unless the caller already set it.
	SaveRegistration(ctx context.Context, reg *models.Registration) error

	// GetRegistration fetches a registration by its public id, returning
	// ErrRegistrationNotFound when the id was never issued.
	GetRegistration(ctx context.Context, registrationID string) (*models.Registration, error)

	// SaveTestResult persists a new test result.
	SaveTestResult(ctx context.Context, res *models.TestResult) error

	// ListArchive returns the joined export: one row per test result plus one
	// row per registration without any result, ordered by registration
	// creation time descending. The slice is empty, never nil, when nothing
	// qualifies.
	ListArchive(ctx context.Context) ([]models.ArchiveRecord, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	Close() error

	// Kind names the implementation for health reporting ("postgres",
	// "memory").
	Kind() string
}
