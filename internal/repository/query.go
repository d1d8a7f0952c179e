package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Kind registers a queryable entity collection. Fields is the allow-list
// mapping exposed filter/order names to columns; anything outside it is
// rejected before SQL is built, so no caller-supplied text reaches the
// query.
type Kind struct {
	Table        string
	Columns      string
	Fields       map[string]string
	DefaultOrder string
}

// Predicate is one structured filter condition. Ops OpIsNull and
// OpNotNull take no value.
type Predicate struct {
	Field string
	Op    string
	Value any
}

const (
	OpEq      = "="
	OpNeq     = "!="
	OpLt      = "<"
	OpLte     = "<="
	OpGt      = ">"
	OpGte     = ">="
	OpIsNull  = "IS NULL"
	OpNotNull = "IS NOT NULL"
)

var allowedOps = map[string]struct{}{
	OpEq: {}, OpNeq: {}, OpLt: {}, OpLte: {}, OpGt: {}, OpGte: {},
	OpIsNull: {}, OpNotNull: {},
}

type Order struct {
	Field string
	Desc  bool
}

// Page is the envelope every listing returns.
type Page[T any] struct {
	Items       []T
	Page        int
	PageSize    int
	TotalCount  int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// maxPageIndex bounds the effective page so the OFFSET computation can
// never overflow int, whatever the request parameter carries. Pages this
// deep are far past any real collection and just yield the empty envelope.
const maxPageIndex = 1 << 20

// ParsePage maps the "page" request parameter to an effective index.
// Non-numeric input and values below 1 normalize to 1 rather than erroring.
func ParsePage(s string) int {
	p, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return NormalizePage(p)
}

func NormalizePage(p int) int {
	if p < 1 {
		return 1
	}
	if p > maxPageIndex {
		return maxPageIndex
	}
	return p
}

// NewPage computes the envelope metadata. There is always at least one
// page, even for an empty collection.
func NewPage[T any](items []T, total, page, pageSize int) Page[T] {
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

func buildWhere(k Kind, preds []Predicate) (string, []any, error) {
	if len(preds) == 0 {
		return "", nil, nil
	}
	var (
		clauses []string
		args    []any
	)
	for _, p := range preds {
		column, ok := k.Fields[p.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown field %q for %s", p.Field, k.Table)
		}
		if _, ok := allowedOps[p.Op]; !ok {
			return "", nil, fmt.Errorf("unsupported operator %q", p.Op)
		}
		if p.Op == OpIsNull || p.Op == OpNotNull {
			clauses = append(clauses, fmt.Sprintf("%s %s", column, p.Op))
			continue
		}
		args = append(args, p.Value)
		clauses = append(clauses, fmt.Sprintf("%s %s $%d", column, p.Op, len(args)))
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func buildOrder(k Kind, order *Order) (string, error) {
	if order == nil {
		if k.DefaultOrder == "" {
			return "", nil
		}
		return " ORDER BY " + k.DefaultOrder, nil
	}
	column, ok := k.Fields[order.Field]
	if !ok {
		return "", fmt.Errorf("unknown order field %q for %s", order.Field, k.Table)
	}
	dir := "ASC"
	if order.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, dir), nil
}

// Executor runs counted, filtered, ordered, paged reads for any registered
// kind so individual repositories do not repeat pagination math.
type Executor struct {
	pool *pgxpool.Pool
}

func NewExecutor(pool *pgxpool.Pool) *Executor {
	return &Executor{pool: pool}
}

func (e *Executor) Count(ctx context.Context, k Kind, preds []Predicate) (int, error) {
	where, args, err := buildWhere(k, preds)
	if err != nil {
		return 0, err
	}
	var count int
	query := "SELECT COUNT(*) FROM " + k.Table + where
	if err := e.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", k.Table, err)
	}
	return count, nil
}

func buildColumnQuery(k Kind, field string, preds []Predicate) (string, []any, error) {
	column, ok := k.Fields[field]
	if !ok {
		return "", nil, fmt.Errorf("unknown field %q for %s", field, k.Table)
	}
	where, args, err := buildWhere(k, preds)
	if err != nil {
		return "", nil, err
	}
	return "SELECT " + column + " FROM " + k.Table + where, args, nil
}

// FetchColumn reads one column across the matching rows of a kind,
// unpaged, for aggregation. NULLs come back as nil entries. Predicates
// apply the same scoping as paged reads, so aggregations never see rows
// the listings hide.
func (e *Executor) FetchColumn(ctx context.Context, k Kind, field string, preds []Predicate) ([]*string, error) {
	query, args, err := buildColumnQuery(k, field, preds)
	if err != nil {
		return nil, err
	}
	rows, err := e.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch %s.%s: %w", k.Table, field, err)
	}
	defer rows.Close()

	var values []*string
	for rows.Next() {
		var v *string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// FetchPage retrieves one page of a kind. A page index past the end of the
// collection yields an empty but structurally valid envelope, not an error.
func FetchPage[T any](
	ctx context.Context,
	e *Executor,
	k Kind,
	preds []Predicate,
	order *Order,
	page, pageSize int,
	scan func(rows pgx.Rows) (T, error),
) (Page[T], error) {
	page = NormalizePage(page)

	total, err := e.Count(ctx, k, preds)
	if err != nil {
		return Page[T]{}, err
	}

	items := []T{}
	offset := (page - 1) * pageSize
	if offset < total {
		where, args, err := buildWhere(k, preds)
		if err != nil {
			return Page[T]{}, err
		}
		orderBy, err := buildOrder(k, order)
		if err != nil {
			return Page[T]{}, err
		}

		args = append(args, pageSize, offset)
		query := fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT $%d OFFSET $%d",
			k.Columns, k.Table, where, orderBy, len(args)-1, len(args))

		rows, err := e.pool.Query(ctx, query, args...)
		if err != nil {
			return Page[T]{}, fmt.Errorf("fetch page %s: %w", k.Table, err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return Page[T]{}, err
			}
			items = append(items, item)
		}
		if err := rows.Err(); err != nil {
			return Page[T]{}, err
		}
	}

	return NewPage(items, total, page, pageSize), nil
}
