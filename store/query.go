package store

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultLimit = 50

// Reserved query parameters never reach the filter.
var reservedParams = map[string]bool{
	"page":    true,
	"limit":   true,
	"sort":    true,
	"fields":  true,
	"keyword": true,
}

var (
	plainField    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.]*$`)
	comparisonKey = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9_.]*)\[(gte|gt|lte|lt)\]$`)
)

// Pagination describes the page of a list result.
type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	Limit         int `json:"limit"`
	NumberOfPages int `json:"numberOfPages"`
	NextPage      int `json:"nextPage,omitempty"`
	PrevPage      int `json:"prevPage,omitempty"`
}

// ListQuery composes filtering, search, sorting, projection and
// pagination for one list request from the raw query string. Child
// resource scoping (e.g. reviews of one product) is passed in
// explicitly through WithScope, never smuggled through the request.
type ListQuery struct {
	raw          url.Values
	scope        bson.M
	searchFields []string
}

type ListOption func(*ListQuery)

// WithScope ANDs a fixed filter into both the query filter and the
// total count used for pagination metadata.
func WithScope(filter bson.M) ListOption {
	return func(q *ListQuery) {
		for k, v := range filter {
			q.scope[k] = v
		}
	}
}

// WithSearchFields sets the document fields matched by the keyword
// parameter. Defaults to name only.
func WithSearchFields(fields ...string) ListOption {
	return func(q *ListQuery) { q.searchFields = fields }
}

func NewListQuery(raw url.Values, opts ...ListOption) *ListQuery {
	q := &ListQuery{
		raw:          raw,
		scope:        bson.M{},
		searchFields: []string{"name"},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

func (q *ListQuery) Page() int {
	if n, err := strconv.Atoi(q.raw.Get("page")); err == nil && n > 0 {
		return n
	}
	return 1
}

func (q *ListQuery) Limit() int {
	if n, err := strconv.Atoi(q.raw.Get("limit")); err == nil && n > 0 {
		return n
	}
	return defaultLimit
}

func (q *ListQuery) Skip() int64 {
	return int64(q.Limit() * (q.Page() - 1))
}

// Scope returns only the fixed scoping filter, the basis for the total
// count behind the pagination metadata.
func (q *ListQuery) Scope() bson.M {
	out := bson.M{}
	for k, v := range q.scope {
		out[k] = v
	}
	return out
}

// Filter builds the full query filter: the scope, the remaining
// query-string pairs as equality or gte/gt/lte/lt comparisons ANDed
// together, and the keyword search. Keys that are not valid field
// expressions are dropped rather than passed through.
func (q *ListQuery) Filter() bson.M {
	filter := q.Scope()

	for key, values := range q.raw {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		if m := comparisonKey.FindStringSubmatch(key); m != nil {
			field, op := m[1], "$"+m[2]
			cmp, ok := filter[field].(bson.M)
			if !ok {
				cmp = bson.M{}
				filter[field] = cmp
			}
			cmp[op] = coerceValue(values[0])
			continue
		}
		if plainField.MatchString(key) {
			filter[key] = coerceValue(values[0])
		}
	}

	if keyword := q.raw.Get("keyword"); keyword != "" {
		or := make([]bson.M, 0, len(q.searchFields))
		for _, f := range q.searchFields {
			or = append(or, bson.M{f: primitive.Regex{
				Pattern: regexp.QuoteMeta(keyword),
				Options: "i",
			}})
		}
		filter["$or"] = or
	}

	return filter
}

// Sort parses the comma-separated sort parameter, "-" prefix meaning
// descending. Default is newest first.
func (q *ListQuery) Sort() bson.D {
	raw := q.raw.Get("sort")
	if raw == "" {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	sort := bson.D{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		dir := 1
		if strings.HasPrefix(field, "-") {
			dir = -1
			field = field[1:]
		}
		if plainField.MatchString(field) {
			sort = append(sort, bson.E{Key: field, Value: dir})
		}
	}
	if len(sort) == 0 {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return sort
}

// Projection builds the field allow-list from the fields parameter;
// nil means the full document.
func (q *ListQuery) Projection() bson.M {
	raw := q.raw.Get("fields")
	if raw == "" {
		return nil
	}
	proj := bson.M{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if plainField.MatchString(field) {
			proj[field] = 1
		}
	}
	if len(proj) == 0 {
		return nil
	}
	return proj
}

// Paginate computes the metadata record for a total document count.
func (q *ListQuery) Paginate(total int64) Pagination {
	page, limit := q.Page(), q.Limit()
	pg := Pagination{
		CurrentPage:   page,
		Limit:         limit,
		NumberOfPages: int(math.Ceil(float64(total) / float64(limit))),
	}
	if int64(page*limit) < total {
		pg.NextPage = page + 1
	}
	if q.Skip() > 0 {
		pg.PrevPage = page - 1
	}
	return pg
}

// coerceValue turns numeric and boolean strings into their typed form
// so range comparisons work against number fields.
func coerceValue(s string) any {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if id, err := primitive.ObjectIDFromHex(s); err == nil {
		return id
	}
	return s
}
