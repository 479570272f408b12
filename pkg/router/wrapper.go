package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.baseCtx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		resp, err := func() (*Response, error) {
			if req.Method != method {
				return nil, errorx.New(errorx.BadRequest, "Method not allowed")
			}

			for _, middleware := range r.befores {
				next, err := middleware(ctx)
				if err != nil {
					return nil, err
				}
				ctx = next
			}

			var err error
			var request Request
			switch method {
			case http.MethodGet:
				err = bindQuery(req.URL.Query(), &request)
			case http.MethodPost:
				err = json.NewDecoder(req.Body).Decode(&request)
			}
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return nil, errorx.New(errorx.BadRequest, "Cannot bind the request")
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				return nil, err
			}

			for _, middleware := range r.afters {
				next, err := middleware(ctx)
				if err != nil {
					return nil, err
				}
				ctx = next
			}

			return resp, nil
		}()

		if err != nil {
			writeJSON(ctx, w, newErrorResponse(err))
		} else {
			writeJSON(ctx, w, newResponse(resp))
		}

		ctx = xcontext.WithError(ctx, err)
		if resp != nil {
			ctx = xcontext.WithResponse(ctx, resp)
		}

		for _, closer := range r.closers {
			closer(ctx)
		}
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
