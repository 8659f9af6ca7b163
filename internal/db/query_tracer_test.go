package db

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestNormalizeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "empty", query: "   ", want: "sql.query"},
		{name: "collapses whitespace", query: "\n\t\tSELECT id\n\t\tFROM orders\n", want: "SELECT id FROM orders"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeQuery(tt.query); got != tt.want {
				t.Fatalf("normalizeQuery() = %q, want %q", got, tt.want)
			}
		})
	}

	long := "SELECT " + strings.Repeat("x", 600)
	if got := normalizeQuery(long); len(got) != 512 {
		t.Fatalf("expected truncation to 512, got %d", len(got))
	}
}

func TestQueryOperation(t *testing.T) {
	t.Parallel()

	if got := queryOperation("update orders set status = $1"); got != "UPDATE" {
		t.Fatalf("unexpected operation: %q", got)
	}
	if got := queryOperation(""); got != "" {
		t.Fatalf("expected empty operation, got %q", got)
	}
}

func TestQueryTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query string
		want  string
	}{
		{query: "SELECT id, name, image_url FROM products WHERE id = $1", want: "products"},
		{query: "INSERT INTO cart_items (cart_id, item_id) VALUES ($1, $2)", want: "cart_items"},
		{query: "UPDATE orders SET status = $1 WHERE id = $3", want: "orders"},
		{query: `DELETE FROM "cart_items" WHERE cart_id = $1`, want: "cart_items"},
		{query: "SELECT 1", want: ""},
	}

	for _, tt := range tests {
		if got := queryTable(tt.query); got != tt.want {
			t.Fatalf("queryTable(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestQueryTracer_WithoutSpan(t *testing.T) {
	t.Parallel()

	tracer := newQueryTracer()
	ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT id FROM orders"})

	traced, ok := ctx.Value(querySpanContextKey{}).(*tracedQuery)
	if !ok || traced.span != nil {
		t.Fatalf("expected untraced query state, got %+v", traced)
	}
	if traced.operation != "SELECT" || traced.table != "orders" {
		t.Fatalf("unexpected query state: %+v", traced)
	}

	tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{Err: pgx.ErrNoRows})
}
