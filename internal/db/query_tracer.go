package db

import (
	"context"
	"errors"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"
	"github.com/jackc/pgx/v5"

	"github.com/nextpizza/storefront/internal/observability"
)

const maxQueryDescriptionLen = 512

type querySpanContextKey struct{}

// queryTracer records a Sentry span per query and counts failed queries.
type queryTracer struct{}

func newQueryTracer() *queryTracer {
	return &queryTracer{}
}

type tracedQuery struct {
	span      *sentry.Span
	operation string
	table     string
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	query := normalizeQuery(data.SQL)
	traced := &tracedQuery{
		operation: queryOperation(query),
		table:     queryTable(query),
	}

	if sentry.SpanFromContext(ctx) != nil {
		traced.span = sentry.StartSpan(
			ctx,
			"db.query",
			sentry.WithDescription(query),
			sentry.WithSpanOrigin(sentry.SpanOriginManual),
		)
		traced.span.SetData("db.system", "postgresql")
		if traced.operation != "" {
			traced.span.SetData("db.operation", traced.operation)
		}
		if traced.table != "" {
			traced.span.SetData("db.collection.name", traced.table)
		}
		ctx = traced.span.Context()
	}

	return context.WithValue(ctx, querySpanContextKey{}, traced)
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	traced, _ := ctx.Value(querySpanContextKey{}).(*tracedQuery)
	if traced == nil {
		return
	}

	if data.Err != nil && !isNoRows(data.Err) {
		observability.MeterFromContext(ctx).Count("db.query.errors", 1, sentry.WithAttributes(
			attribute.String("db.operation", traced.operation),
			attribute.String("db.collection.name", traced.table),
		))
	}

	if traced.span == nil {
		return
	}
	if data.Err != nil {
		traced.span.Status = sentry.SpanStatusInternalError
		traced.span.SetData("db.error", data.Err.Error())
	} else {
		traced.span.Status = sentry.SpanStatusOK
	}
	if rowsAffected := data.CommandTag.RowsAffected(); rowsAffected >= 0 {
		traced.span.SetData("db.rows_affected", rowsAffected)
	}
	traced.span.Finish()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func normalizeQuery(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if normalized == "" {
		return "sql.query"
	}
	if len(normalized) > maxQueryDescriptionLen {
		return normalized[:maxQueryDescriptionLen]
	}
	return normalized
}

func queryOperation(query string) string {
	parts := strings.Fields(query)
	if len(parts) == 0 {
		return ""
	}
	return strings.ToUpper(parts[0])
}

// queryTable returns the first table named after FROM, INTO or UPDATE.
func queryTable(query string) string {
	parts := strings.Fields(query)
	for i := 0; i < len(parts)-1; i++ {
		switch strings.ToUpper(parts[i]) {
		case "FROM", "INTO", "UPDATE":
			return strings.Trim(strings.ToLower(parts[i+1]), `"(),;`)
		}
	}
	return ""
}
