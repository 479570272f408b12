package testutil

import (
	"context"
	"time"

	"github.com/questboard/backend/config"
	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/pkg/logger"
	"github.com/questboard/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "secret",
				Expiration: time.Minute,
			},
		},
		Quest: config.QuestConfigs{
			IDLength:       8,
			AcceptCooldown: 24 * time.Hour,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	return ctx
}

// MockContextWithUserID derives an authenticated context from ctx, keeping
// the same database.
func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
