package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/docthru/backend/config"
	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/migration"
	"github.com/docthru/backend/pkg/logger"
	"github.com/docthru/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewMockContext returns a context carrying a fresh in-memory database with
// the schema migrated but no rows.
func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// Every connection to ":memory:" opens its own database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	cfg := config.Default()
	cfg.Env = "test"
	cfg.Auth.TokenSecret = "secret"
	cfg.Auth.AccessToken.Expiration = time.Minute
	cfg.ApiServer.MaxPageSize = 50

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewSilentLogger())
	ctx = xcontext.WithSnowFlake(ctx, node)
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// NewMockContextWithFixtures is NewMockContext with the fixture rows inserted.
func NewMockContextWithFixtures() context.Context {
	ctx := NewMockContext()
	CreateFixtureDb(ctx)
	return ctx
}

func NewMockContextWithUser(ctx context.Context, user *entity.User) context.Context {
	ctx = xcontext.WithRequestUserID(ctx, user.ID)
	return xcontext.WithRequestUserRole(ctx, string(user.Role))
}
