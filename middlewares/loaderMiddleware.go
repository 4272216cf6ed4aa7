package middlewares

import (
	"context"
	"time"

	"github.com/benela/benela_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/dataloader/v7"
)

type ctxKey string

const (
	loadersKey = ctxKey("dataloaders")
)

// Loaders wrap your data loaders to inject via middleware
type Loaders struct {
	latestSubscriptionLoader *dataloader.Loader[int, *models.Subscription]
}

// NewLoaders instantiates data loaders for the middleware
func NewLoaders() *Loaders {
	latestSubscriptionReader := &latestSubscriptionReader{}

	return &Loaders{
		latestSubscriptionLoader: dataloader.NewBatchedLoader(
			latestSubscriptionReader.getLatestSubscriptions,
			dataloader.WithWait[int, *models.Subscription](time.Millisecond),
		),
	}
}

func LoaderMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		loader := NewLoaders()
		ctx := context.WithValue(c.Request.Context(), loadersKey, loader)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// For returns the request's loaders, or a fresh set outside a request.
func For(ctx context.Context) *Loaders {
	if loaders, ok := ctx.Value(loadersKey).(*Loaders); ok && loaders != nil {
		return loaders
	}
	return NewLoaders()
}

// handleError creates array of result with the same error repeated for as many items requested
func handleError[T any](itemsLength int, err error) []*dataloader.Result[T] {
	result := make([]*dataloader.Result[T], itemsLength)
	for i := 0; i < itemsLength; i++ {
		result[i] = &dataloader.Result[T]{Error: err}
	}
	return result
}

// turns a key -> value map into dataloader results in key order;
// missing keys resolve to the zero value without an error
func generateLoaderResults[T any](resultMap map[int]T, ids []int) []*dataloader.Result[T] {
	loaderResults := make([]*dataloader.Result[T], 0, len(ids))
	for _, id := range ids {
		loaderResults = append(loaderResults, &dataloader.Result[T]{Data: resultMap[id]})
	}
	return loaderResults
}
