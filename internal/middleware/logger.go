package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/router"
	"github.com/questboard/backend/pkg/xcontext"
)

func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		r := xcontext.HTTPRequest(ctx)
		if r == nil {
			return
		}

		info := fmt.Sprintf("%s | %s", r.Method, r.URL.Path)
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				xcontext.Logger(ctx).Warnf("%s | %d", info, errx.Code)
			} else {
				xcontext.Logger(ctx).Errorf("%s | %d", info, -1)
			}
		} else {
			xcontext.Logger(ctx).Infof(info)
		}
	}
}
