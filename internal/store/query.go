package store

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	defaultSort  = "createdAt"

	// maxPage and maxLimit bound client-supplied paging so the skip
	// computation can never overflow int64.
	maxPage  = 1_000_000
	maxLimit = 1_000
)

// ListQuery is the parsed form of the list-endpoint query string.
type ListQuery struct {
	Page  int
	Limit int
	Sort  string
	Desc  bool
	// Filters maps a document field to a case-insensitive substring to match.
	Filters map[string]string
}

// ParseListQuery reads page/limit/sort/order plus the entity's filter params
// from a query string. filterable maps query parameter -> document field
// (e.g. "country" -> "incorporationCountry"). Invalid or non-positive page and
// limit values fall back to their defaults instead of erroring.
func ParseListQuery(values url.Values, filterable map[string]string) ListQuery {
	q := ListQuery{
		Page:    defaultPage,
		Limit:   defaultLimit,
		Sort:    defaultSort,
		Desc:    true,
		Filters: map[string]string{},
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		q.Page = min(n, maxPage)
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		q.Limit = min(n, maxLimit)
	}
	if s := strings.TrimSpace(values.Get("sort")); s != "" {
		q.Sort = s
	}
	if strings.EqualFold(values.Get("order"), "asc") {
		q.Desc = false
	}
	for param, field := range filterable {
		if v := strings.TrimSpace(values.Get(param)); v != "" {
			q.Filters[field] = v
		}
	}
	return q
}

// Skip is the pagination window offset, never negative even for a query
// constructed with out-of-range values.
func (q ListQuery) Skip() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	skip := int64(q.Page-1) * int64(q.Limit)
	if skip < 0 {
		return 0
	}
	return skip
}

// MongoFilter builds the driver filter: one unanchored case-insensitive
// regex per filter field. Substrings are quoted so user input is matched
// literally.
func (q ListQuery) MongoFilter() bson.M {
	filter := bson.M{}
	for field, sub := range q.Filters {
		filter[field] = primitive.Regex{Pattern: regexp.QuoteMeta(sub), Options: "i"}
	}
	return filter
}

// SortSpec is the driver sort document for the query's sort field and order.
func (q ListQuery) SortSpec() bson.D {
	dir := 1
	if q.Desc {
		dir = -1
	}
	return bson.D{{Key: q.Sort, Value: dir}}
}

// TotalPages is ceil(total/limit), with an explicit zero for an empty result
// set so a degenerate limit can never divide by zero.
func TotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
