package migration_test

import (
	"testing"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/migration"
	"github.com/docthru/backend/pkg/testutil"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Sqlite(t *testing.T) {
	ctx := testutil.NewMockContext()
	cfg := xcontext.Configs(ctx)
	cfg.Database.Driver = "sqlite"
	ctx = xcontext.WithConfigs(ctx, cfg)

	// Running twice is a no-op.
	require.NoError(t, migration.Migrate(ctx))
	require.NoError(t, migration.Migrate(ctx))

	for _, table := range []any{
		&entity.User{}, &entity.Challenge{}, &entity.Application{},
		&entity.Participant{}, &entity.Work{}, &entity.Feedback{},
	} {
		require.True(t, xcontext.DB(ctx).Migrator().HasTable(table))
	}

	require.True(t, xcontext.DB(ctx).Migrator().HasIndex(&entity.Application{}, "idx_application_author_challenge"))
}
