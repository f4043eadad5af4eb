package database

import (
	"context"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// queryLogger implements bun.QueryHook, recording every statement run
// against one community ledger. The ledger path is attached as a logger
// field so interleaved logs from different communities stay attributable.
type queryLogger struct {
	logger *zap.Logger
}

func newQueryLogger(path string, logger *zap.Logger) *queryLogger {
	return &queryLogger{
		logger: logger.With(zap.String("ledger", path)),
	}
}

func (q *queryLogger) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery records the statement and its duration. Failures log at
// error level; routine statements stay at debug to keep ledger logs
// quiet outside of debugging sessions.
func (q *queryLogger) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if event.Err != nil {
		q.logger.Error("Ledger query failed",
			zap.String("query", event.Query),
			zap.Duration("duration", time.Since(event.StartTime)),
			zap.Error(event.Err))

		return
	}

	q.logger.Debug("Ledger query executed",
		zap.String("query", event.Query),
		zap.Duration("duration", time.Since(event.StartTime)))
}
