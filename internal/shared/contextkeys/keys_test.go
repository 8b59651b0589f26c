//go:build unit
// +build unit

package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "cityseed context key testKey", key.String())
}

func TestContextKeys_Usage(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, RunIDKey, "run-123")
	ctx = context.WithValue(ctx, ComponentKey, "seed-usecase")
	ctx = context.WithValue(ctx, OperationKey, "seed")
	ctx = context.WithValue(ctx, CountryIDKey, "507f1f77bcf86cd799439021")

	assert.Equal(t, "run-123", ctx.Value(RunIDKey))
	assert.Equal(t, "seed-usecase", ctx.Value(ComponentKey))
	assert.Equal(t, "seed", ctx.Value(OperationKey))
	assert.Equal(t, "507f1f77bcf86cd799439021", ctx.Value(CountryIDKey))
	assert.Nil(t, ctx.Value(contextKey("missing")))
}
