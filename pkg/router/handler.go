package router

import (
	"context"
	"errors"
	"io"

	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

type bindFunc func(c *gin.Context, req any) error

func bindQuery(c *gin.Context, req any) error {
	return c.ShouldBindQuery(req)
}

func bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func wrapHandler[Request, Response any](
	r *Router, bind bindFunc, handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	// Middlewares added after the route is registered do not apply to it.
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	return func(c *gin.Context) {
		ctx := r.newContext(c.Request)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var resp *Response
		err := func() error {
			var err error
			if ctx, err = runMiddlewares(ctx, befores); err != nil {
				return err
			}

			var req Request
			if err := bind(c, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return errorx.New(errorx.BadRequest, "Invalid request format")
			}

			resp, err = handler(ctx, &req)
			if err != nil {
				return err
			}

			ctx, err = runMiddlewares(ctx, afters)
			return err
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(ctx, c, err)
			return
		}

		writeData(c, resp)
	}
}

func runMiddlewares(ctx context.Context, middlewares []MiddlewareFunc) (context.Context, error) {
	for _, middleware := range middlewares {
		newCtx, err := middleware(ctx)
		if err != nil {
			return ctx, err
		}

		if newCtx != nil {
			ctx = newCtx
		}
	}

	return ctx, nil
}
