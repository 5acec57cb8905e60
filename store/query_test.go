package store

import (
	"net/url"
	"reflect"
	"strconv"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func values(pairs ...string) url.Values {
	v := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Add(pairs[i], pairs[i+1])
	}
	return v
}

func TestListQueryPagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := NewListQuery(values())
		if q.Page() != 1 {
			t.Errorf("Page() = %d, want 1", q.Page())
		}
		if q.Limit() != 50 {
			t.Errorf("Limit() = %d, want 50", q.Limit())
		}
		if q.Skip() != 0 {
			t.Errorf("Skip() = %d, want 0", q.Skip())
		}
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		q := NewListQuery(values("page", "3", "limit", "20"))
		if q.Page() != 3 || q.Limit() != 20 {
			t.Fatalf("got page %d limit %d, want 3 and 20", q.Page(), q.Limit())
		}
		if q.Skip() != 40 {
			t.Errorf("Skip() = %d, want 40", q.Skip())
		}
	})

	t.Run("garbage values fall back to defaults", func(t *testing.T) {
		q := NewListQuery(values("page", "x", "limit", "-5"))
		if q.Page() != 1 || q.Limit() != 50 {
			t.Errorf("got page %d limit %d, want defaults", q.Page(), q.Limit())
		}
	})

	t.Run("metadata over a five page result", func(t *testing.T) {
		// 237 documents at 50 per page occupy pages 1 through 5.
		const total = 237
		for page := 1; page <= 5; page++ {
			q := NewListQuery(values("page", strconv.Itoa(page)))
			pg := q.Paginate(total)

			if pg.CurrentPage != page {
				t.Errorf("page %d: CurrentPage = %d", page, pg.CurrentPage)
			}
			if pg.NumberOfPages != 5 {
				t.Errorf("page %d: NumberOfPages = %d, want 5", page, pg.NumberOfPages)
			}
			wantNext := 0
			if page < 5 {
				wantNext = page + 1
			}
			if pg.NextPage != wantNext {
				t.Errorf("page %d: NextPage = %d, want %d", page, pg.NextPage, wantNext)
			}
			wantPrev := 0
			if page > 1 {
				wantPrev = page - 1
			}
			if pg.PrevPage != wantPrev {
				t.Errorf("page %d: PrevPage = %d, want %d", page, pg.PrevPage, wantPrev)
			}
		}
	})

	t.Run("exact multiple has no phantom page", func(t *testing.T) {
		q := NewListQuery(values("page", "2"))
		pg := q.Paginate(100)
		if pg.NumberOfPages != 2 {
			t.Errorf("NumberOfPages = %d, want 2", pg.NumberOfPages)
		}
		if pg.NextPage != 0 {
			t.Errorf("NextPage = %d, want none", pg.NextPage)
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		pg := NewListQuery(values()).Paginate(0)
		if pg.NumberOfPages != 0 || pg.NextPage != 0 || pg.PrevPage != 0 {
			t.Errorf("unexpected metadata for empty total: %+v", pg)
		}
	})
}

func TestListQueryFilter(t *testing.T) {
	t.Run("reserved keys never reach the filter", func(t *testing.T) {
		q := NewListQuery(values(
			"page", "2", "limit", "10", "sort", "price",
			"fields", "title", "keyword", "",
		))
		if got := q.Filter(); len(got) != 0 {
			t.Errorf("Filter() = %v, want empty", got)
		}
	})

	t.Run("equality with numeric coercion", func(t *testing.T) {
		got := NewListQuery(values("ratingsAverage", "4.5")).Filter()
		want := bson.M{"ratingsAverage": 4.5}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Filter() = %v, want %v", got, want)
		}
	})

	t.Run("range operators merge per field", func(t *testing.T) {
		got := NewListQuery(values("price[gte]", "100", "price[lte]", "500")).Filter()
		want := bson.M{"price": bson.M{"$gte": 100.0, "$lte": 500.0}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Filter() = %v, want %v", got, want)
		}
	})

	t.Run("gt and lt", func(t *testing.T) {
		got := NewListQuery(values("sold[gt]", "0", "quantity[lt]", "10")).Filter()
		want := bson.M{
			"sold":     bson.M{"$gt": 0.0},
			"quantity": bson.M{"$lt": 10.0},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Filter() = %v, want %v", got, want)
		}
	})

	t.Run("object id coercion", func(t *testing.T) {
		id := primitive.NewObjectID()
		got := NewListQuery(values("category", id.Hex())).Filter()
		if !reflect.DeepEqual(got["category"], id) {
			t.Errorf("category = %v (%T), want object id", got["category"], got["category"])
		}
	})

	t.Run("malformed keys are dropped", func(t *testing.T) {
		got := NewListQuery(values(
			"$where", "1", "price[foo]", "3", "1bad", "x", "a b", "y",
		)).Filter()
		if len(got) != 0 {
			t.Errorf("Filter() = %v, want empty", got)
		}
	})

	t.Run("scope is always present", func(t *testing.T) {
		owner := primitive.NewObjectID()
		q := NewListQuery(values("price[gte]", "5"), WithScope(bson.M{"user": owner}))
		got := q.Filter()
		if !reflect.DeepEqual(got["user"], owner) {
			t.Errorf("scope missing from filter: %v", got)
		}
		if got := q.Scope(); !reflect.DeepEqual(got, bson.M{"user": owner}) {
			t.Errorf("Scope() = %v", got)
		}
	})

	t.Run("keyword builds a case insensitive or across search fields", func(t *testing.T) {
		q := NewListQuery(values("keyword", "choco"), WithSearchFields("title", "description"))
		or, ok := q.Filter()["$or"].([]bson.M)
		if !ok || len(or) != 2 {
			t.Fatalf("$or = %v", q.Filter()["$or"])
		}
		re, ok := or[0]["title"].(primitive.Regex)
		if !ok || re.Pattern != "choco" || re.Options != "i" {
			t.Errorf("title clause = %v", or[0])
		}
		if _, ok := or[1]["description"]; !ok {
			t.Errorf("description clause missing: %v", or)
		}
	})

	t.Run("keyword with regex metacharacters is quoted", func(t *testing.T) {
		q := NewListQuery(values("keyword", "a.b*"))
		or := q.Filter()["$or"].([]bson.M)
		re := or[0]["name"].(primitive.Regex)
		if re.Pattern == "a.b*" {
			t.Errorf("pattern not quoted: %q", re.Pattern)
		}
	})
}

func TestListQuerySort(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bson.D
	}{
		{"default newest first", "", bson.D{{Key: "createdAt", Value: -1}}},
		{"ascending", "price", bson.D{{Key: "price", Value: 1}}},
		{"descending", "-sold", bson.D{{Key: "sold", Value: -1}}},
		{"multiple fields", "-sold, price", bson.D{
			{Key: "sold", Value: -1},
			{Key: "price", Value: 1},
		}},
		{"invalid fields fall back to default", "$bad,", bson.D{{Key: "createdAt", Value: -1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NewListQuery(values("sort", tc.raw)).Sort()
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Sort(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestListQueryProjection(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		if got := NewListQuery(values()).Projection(); got != nil {
			t.Errorf("Projection() = %v, want nil", got)
		}
	})
	t.Run("allow list", func(t *testing.T) {
		got := NewListQuery(values("fields", "title,price, quantity")).Projection()
		want := bson.M{"title": 1, "price": 1, "quantity": 1}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Projection() = %v, want %v", got, want)
		}
	})
	t.Run("invalid fields only", func(t *testing.T) {
		if got := NewListQuery(values("fields", "$secret,")).Projection(); got != nil {
			t.Errorf("Projection() = %v, want nil", got)
		}
	})
}
