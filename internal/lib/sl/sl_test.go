package sl_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/readiness-entitlements/internal/lib/sl"
)

func TestErr_ReturnsCorrectAttr(t *testing.T) {
	attr := sl.Err(errors.New("something went wrong"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "something went wrong", attr.Value.String())
}

func TestErr_NilError(t *testing.T) {
	assert.NotPanics(t, func() {
		attr := sl.Err(nil)
		assert.Equal(t, "<nil>", attr.Value.String())
	})
}

func TestOp(t *testing.T) {
	attr := sl.Op("entitlement.Status")
	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "entitlement.Status", attr.Value.String())
}

func TestNew_LevelByEnv(t *testing.T) {
	ctx := context.Background()

	assert.True(t, sl.New("local").Enabled(ctx, slog.LevelDebug))
	assert.True(t, sl.New("dev").Enabled(ctx, slog.LevelDebug))
	assert.False(t, sl.New("prod").Enabled(ctx, slog.LevelDebug))
	assert.True(t, sl.New("prod").Enabled(ctx, slog.LevelInfo))
}
