package domain

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/docthru/backend/internal/common"
	"github.com/docthru/backend/internal/model"
	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/pubsub"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/google/uuid"
)

func parseID(name, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errorx.New(errorx.BadRequest, "Require %s", name)
	}

	id, err := snowflake.ParseString(s)
	if err != nil || id <= 0 {
		return 0, errorx.New(errorx.BadRequest, "Invalid %s", name)
	}

	return id.Int64(), nil
}

func newID(ctx context.Context) int64 {
	return xcontext.SnowFlake(ctx).Generate().Int64()
}

// resolvePage applies the configured defaults to a 1-based page request.
func resolvePage(ctx context.Context, page, pageSize int) (int, int, error) {
	if page < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative page")
	}

	if pageSize < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Page size must be positive")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if page == 0 {
		page = 1
	}

	if pageSize == 0 {
		pageSize = apiCfg.DefaultPageSize
	}

	if pageSize > apiCfg.MaxPageSize {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of page size (%d)", apiCfg.MaxPageSize)
	}

	return page, pageSize, nil
}

func requireUser(ctx context.Context) (int64, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == 0 {
		return 0, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	return userID, nil
}

// publishEvent never fails the caller; the event stream is best effort.
func publishEvent(
	ctx context.Context, publisher pubsub.Publisher, topic string, key int64, now time.Time, data any,
) {
	b, err := json.Marshal(model.Event{ID: uuid.NewString(), Type: topic, Time: now, Data: data})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal %s event: %v", topic, err)
		return
	}

	pack := &pubsub.Pack{Key: []byte(model.FormatID(key)), Msg: b}
	if err := publisher.Publish(ctx, topic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish %s event: %v", topic, err)
		common.PromCounters[common.PublishEventFailure].WithLabelValues(topic).Inc()
	}
}
