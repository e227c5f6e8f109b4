package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/router"
	"github.com/docthru/backend/pkg/xcontext"
)

// Logger writes one line per request: method, path, error code and latency.
// Client errors are warnings, anything outside errorx is an error.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		info := fmt.Sprintf("%s | %s", req.Method, req.URL.Path)

		var latency time.Duration
		if startTime := xcontext.StartTime(ctx); !startTime.IsZero() {
			latency = time.Since(startTime)
		}

		err := xcontext.Error(ctx)
		if err == nil {
			xcontext.Logger(ctx).Infof("%s | 0 | %v", info, latency)
			return
		}

		var errx errorx.Error
		if errors.As(err, &errx) {
			xcontext.Logger(ctx).Warnf("%s | %d | %v | %s", info, errx.Code, latency, errx.Message)
		} else {
			xcontext.Logger(ctx).Errorf("%s | -1 | %v | %v", info, latency, err)
		}
	}
}
