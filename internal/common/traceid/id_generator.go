package traceid

import (
	"context"

	"github.com/google/uuid"

	"github.com/AlibekovAA/user-registry/internal/common/constants"
)

type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// WithTraceID stores a fresh id under constants.TraceIDKey so log entries can be correlated.
func WithTraceID(ctx context.Context, gen IDGenerator) (context.Context, error) {
	id, err := gen.NewID()
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, constants.TraceIDKey, id), nil
}

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(constants.TraceIDKey).(string)
	return id
}
