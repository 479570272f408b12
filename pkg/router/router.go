package router

import (
	"context"
	"net/http"

	"github.com/questboard/backend/config"
	"github.com/questboard/backend/pkg/logger"
	"github.com/questboard/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may enrich the context it receives; the returned context is
// passed to the next middleware and the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written. The context carries the
// handler's response and error via xcontext.Response and xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, l)
	ctx = xcontext.WithDB(ctx, db)

	return &Router{mux: http.NewServeMux(), baseCtx: ctx}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, seeded from the current one.
func (r *Router) Branch() *Router {
	return &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r.Branch(), http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r.Branch(), http.MethodPost, handler))
}
