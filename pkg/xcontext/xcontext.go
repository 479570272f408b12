package xcontext

import (
	"context"
	"net/http"

	"github.com/questboard/backend/config"
	"github.com/questboard/backend/pkg/logger"

	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	txKey          struct{}
	userIDKey      struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	errorKey       struct{}
	responseKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs provided in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		panic("no logger provided in context")
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction if one began with WithDBTransaction and has not
// finished yet, otherwise the root database handle.
func DB(ctx context.Context) *gorm.DB {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		return state.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database provided in context")
	}

	return db
}

type txState struct {
	tx   *gorm.DB
	done bool
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txState{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		state.tx.Commit()
		state.done = true
	}
}

// WithRollbackDBTransaction is a no-op after WithCommitDBTransaction, so it is
// safe to defer right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) {
	if state, ok := ctx.Value(txKey{}).(*txState); ok && !state.done {
		state.tx.Rollback()
		state.done = true
	}
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func RequestUserID(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok {
		return ""
	}

	return id
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey{}).(*http.Request)
	if !ok {
		return nil
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterKey{}).(http.ResponseWriter)
	if !ok {
		return nil
	}

	return w
}

// WithError records the error a handler returned, for closers running after
// the response is written.
func WithError(ctx context.Context, err error) context.Context {
	return context.WithValue(ctx, errorKey{}, err)
}

func Error(ctx context.Context) error {
	err, ok := ctx.Value(errorKey{}).(error)
	if !ok {
		return nil
	}

	return err
}

func WithResponse(ctx context.Context, resp any) context.Context {
	return context.WithValue(ctx, responseKey{}, resp)
}

func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}
