// Package crud holds the generic handlers the thin catalog resources
// are built from. Each entity kind instantiates them at compile time
// over the store's capability surface.
package crud

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hsddev/cake-store/httperr"
	"github.com/hsddev/cake-store/store"
)

// Store is the capability surface a resource needs for generic CRUD.
// *store.Collection[T] satisfies it; tests use in-memory fakes.
type Store[T any] interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	Create(ctx context.Context, doc *T) (primitive.ObjectID, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch bson.M) (*T, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q *store.ListQuery) ([]T, store.Pagination, error)
}

// Options tune the generic handlers per entity kind.
type Options[T any] struct {
	// SearchFields are matched by the keyword parameter.
	SearchFields []string
	// Scope ANDs an explicit filter into list queries, for child
	// resources nested under a parent route parameter.
	Scope func(c *gin.Context) bson.M
	// Prepare validates and fills a bound document before create.
	Prepare func(c *gin.Context, doc *T) error
	// PreparePatch validates and adjusts an update patch.
	PreparePatch func(c *gin.Context, patch bson.M) error
	// Present maps a stored document for responses (e.g. absolute
	// image URLs), invoked on the read path only.
	Present func(doc *T)
}

// ParseID reads the id route parameter as an object id.
func ParseID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, httperr.BadRequest("invalid id format: %s", c.Param("id"))
	}
	return id, nil
}

func GetAll[T any](st Store[T], o Options[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		opts := []store.ListOption{}
		if len(o.SearchFields) > 0 {
			opts = append(opts, store.WithSearchFields(o.SearchFields...))
		}
		if o.Scope != nil {
			opts = append(opts, store.WithScope(o.Scope(c)))
		}
		q := store.NewListQuery(c.Request.URL.Query(), opts...)

		docs, pagination, err := st.List(c.Request.Context(), q)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if o.Present != nil {
			for i := range docs {
				o.Present(&docs[i])
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"results":           len(docs),
			"paginationResults": pagination,
			"data":              docs,
		})
	}
}

func GetOne[T any](st Store[T], o Options[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		doc, err := st.FindByID(c.Request.Context(), id)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if o.Present != nil {
			o.Present(doc)
		}
		c.JSON(http.StatusOK, doc)
	}
}

func CreateOne[T any](st Store[T], o Options[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var doc T
		if err := c.ShouldBindJSON(&doc); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		if o.Prepare != nil {
			if err := o.Prepare(c, &doc); err != nil {
				httperr.Abort(c, err)
				return
			}
		}
		id, err := st.Create(c.Request.Context(), &doc)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		created, err := st.FindByID(c.Request.Context(), id)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if o.Present != nil {
			o.Present(created)
		}
		c.JSON(http.StatusCreated, created)
	}
}

func UpdateOne[T any](st Store[T], o Options[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		patch := bson.M{}
		if err := c.ShouldBindJSON(&patch); err != nil {
			httperr.Abort(c, httperr.BadRequest("invalid input: %v", err))
			return
		}
		// Identity and bookkeeping fields are not patchable.
		delete(patch, "_id")
		delete(patch, "createdAt")
		delete(patch, "updatedAt")
		if o.PreparePatch != nil {
			if err := o.PreparePatch(c, patch); err != nil {
				httperr.Abort(c, err)
				return
			}
		}
		doc, err := st.UpdateByID(c.Request.Context(), id, patch)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if o.Present != nil {
			o.Present(doc)
		}
		c.JSON(http.StatusOK, doc)
	}
}

func DeleteOne[T any](st Store[T]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseID(c)
		if err != nil {
			httperr.Abort(c, err)
			return
		}
		if err := st.DeleteByID(c.Request.Context(), id); err != nil {
			httperr.Abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
