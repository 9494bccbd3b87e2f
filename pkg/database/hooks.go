package database

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/qustavo/sqlhooks/v2"
)

const (
	hookedDriverName = "postgres-hooked"
	sqlcNamePrefix   = "-- name: "
	unnamedQuery     = "unnamed"
)

var (
	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "nada_tablemetadata",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Duration of database queries by sqlc query name",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	queryErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nada_tablemetadata",
		Subsystem: "db",
		Name:      "query_errors_total",
		Help:      "Number of failed database queries by sqlc query name",
	}, []string{"query"})
)

func init() {
	sql.Register(hookedDriverName, sqlhooks.Wrap(&pq.Driver{}, &queryHooks{}))
}

type beginKey struct{}

var _ sqlhooks.Hooks = &queryHooks{}
var _ sqlhooks.OnErrorer = &queryHooks{}

type queryHooks struct{}

func (h *queryHooks) Before(ctx context.Context, _ string, _ ...interface{}) (context.Context, error) {
	return context.WithValue(ctx, beginKey{}, time.Now()), nil
}

func (h *queryHooks) After(ctx context.Context, query string, _ ...interface{}) (context.Context, error) {
	if begin, ok := ctx.Value(beginKey{}).(time.Time); ok {
		queryDuration.WithLabelValues(QueryName(query)).Observe(time.Since(begin).Seconds())
	}

	return ctx, nil
}

func (h *queryHooks) OnError(_ context.Context, err error, query string, _ ...interface{}) error {
	queryErrors.WithLabelValues(QueryName(query)).Inc()

	return err
}

// QueryName returns the name sqlc puts in the leading comment of a generated
// query, such as ListOwnerNotifications.
func QueryName(query string) string {
	rest, ok := strings.CutPrefix(strings.TrimSpace(query), sqlcNamePrefix)
	if !ok {
		return unnamedQuery
	}

	name, _, _ := strings.Cut(rest, " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return unnamedQuery
	}

	return name
}

// Metrics returns the collectors for query durations and errors.
func Metrics() []prometheus.Collector {
	return []prometheus.Collector{
		queryDuration,
		queryErrors,
	}
}
