package repository

import (
	"context"
	"math"
	"strings"

	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// listQuery assembles the filtered, ordered and paginated SELECT shared by
// every list endpoint, together with the matching COUNT.
type listQuery struct {
	d       database.Dialect
	table   string
	columns string
	where   []string
	args    []any
}

func newListQuery(d database.Dialect, table, columns string) *listQuery {
	return &listQuery{d: d, table: table, columns: columns}
}

// whereEq adds "col = ?".
func (l *listQuery) whereEq(col string, v any) *listQuery {
	l.where = append(l.where, col+" = ?")
	l.args = append(l.args, v)
	return l
}

// whereContains adds a case-insensitive substring match against expr.  The
// column and the pattern are folded by the same SQL function.  An empty term
// adds nothing.
func (l *listQuery) whereContains(expr, term string) *listQuery {
	if term == "" {
		return l
	}
	l.where = append(l.where, l.d.Fold(expr)+" LIKE "+l.d.Fold("?")+" ESCAPE '!'")
	l.args = append(l.args, "%"+escapeLike(term)+"%")
	return l
}

func (l *listQuery) cond() string {
	if len(l.where) == 0 {
		return "1=1"
	}
	return strings.Join(l.where, " AND ")
}

func (l *listQuery) countSQL() string {
	return "SELECT COUNT(*) FROM " + l.table + " WHERE " + l.cond()
}

// selectSQL orders newest first with id as the tie breaker so that pages
// stay stable when timestamps collide.
func (l *listQuery) selectSQL() string {
	return "SELECT " + l.columns + " FROM " + l.table + " WHERE " + l.cond() +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
}

// run executes the count and the page query.  scan is called once per row
// while the cursor is open and must not issue queries.
func (l *listQuery) run(ctx context.Context, q querier, p model.PaginationQuery, scan func(rowScanner) error) (int64, error) {
	p = p.Normalize()

	var total int64
	if err := q.QueryRowContext(ctx, l.countSQL(), l.args...).Scan(&total); err != nil {
		return 0, err
	}

	offset := p.Offset()
	if offset == math.MaxInt || int64(offset) >= total {
		return total, nil // past the last row
	}

	args := append(append([]any{}, l.args...), p.Limit, offset)
	rows, err := q.QueryContext(ctx, l.selectSQL(), args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return 0, err
		}
	}
	return total, rows.Err()
}

// escapeLike neutralises LIKE metacharacters using '!' as the escape char,
// which means the same thing in MySQL and SQLite.
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func idArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// uniqueIDs drops duplicates and zeros, keeping first-seen order.
func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
