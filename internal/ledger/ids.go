package ledger

import (
	"github.com/google/uuid"
)

// UUIDGenerator issues time-ordered UUIDv7 strings. Within a process each
// value sorts after the previous one, so ids never repeat.
type UUIDGenerator struct{}

// NewUUIDGenerator returns the default generator.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// NewID implements service.IDGenerator.
func (UUIDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when crypto/rand does.
		return uuid.NewString()
	}
	return id.String()
}
