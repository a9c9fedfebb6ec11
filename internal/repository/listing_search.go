package repository

import (
	"context"
	"strings"

	"github.com/renthub/condo-rental/internal/model"
)

// ListingSearchQuery defines optional filters & pagination for browsing
// listings.  MinPrice/MaxPrice are inclusive bounds and nil when not
// supplied.  AllStatuses reflects the caller's role: non-admin callers
// always see AVAILABLE listings only, and any Status filter they send
// is ignored.
type ListingSearchQuery struct {
	Location    string
	MinPrice    *float64
	MaxPrice    *float64
	Status      string
	AllStatuses bool
	Page        int
	PageSize    int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes the LIKE wildcards in a filter value so it
// matches as a literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildListingFilter translates a ListingSearchQuery into a WHERE
// condition and its arguments.  Filters are assembled as placeholders
// only; no request value is ever concatenated into the SQL text.
func buildListingFilter(q ListingSearchQuery) (string, []any) {
	where := []string{}
	args := []any{}

	if !q.AllStatuses {
		where = append(where, "status = ?")
		args = append(args, model.ListingStatusAvailable)
	} else if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Location != "" {
		// BINARY keeps the substring match case-sensitive regardless
		// of the column collation.
		where = append(where, "location LIKE BINARY ?")
		args = append(args, "%"+escapeLike(q.Location)+"%")
	}
	if q.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *q.MaxPrice)
	}

	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}

// Search returns the page of listings matching q plus the total match
// count.  Results are ordered by id ascending, i.e. insertion order.
func (r *ListingRepo) Search(ctx context.Context, q ListingSearchQuery) ([]model.Listing, int64, error) {
	cond, args := buildListingFilter(q)

	var total int64
	countSQL := "SELECT COUNT(*) FROM listings WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.PageSize
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	dataSQL := "SELECT " + listingColumns + " FROM listings WHERE " + cond +
		" ORDER BY id ASC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Listing, 0, limit)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
