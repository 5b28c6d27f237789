package pg_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sportkit/pkg/pg"
)

func TestMigrateGuards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing migrations path", func(t *testing.T) {
		t.Parallel()

		err := pg.Migrate(ctx, nil, pg.Config{}, slog.Default())
		assert.ErrorIs(t, err, pg.ErrMigrationPathNotProvided)
	})

	t.Run("nonexistent migrations directory", func(t *testing.T) {
		t.Parallel()

		err := pg.Migrate(ctx, nil, pg.Config{MigrationsPath: "testdata/does-not-exist"}, slog.Default())
		assert.ErrorIs(t, err, pg.ErrMigrationsDirNotFound)
	})
}
