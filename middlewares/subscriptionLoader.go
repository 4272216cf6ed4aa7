package middlewares

import (
	"context"

	"github.com/benela/benela_backend/models"
	"github.com/graph-gophers/dataloader/v7"
)

type latestSubscriptionReader struct{}

// keys are client ids
func (r *latestSubscriptionReader) getLatestSubscriptions(ctx context.Context, clientIds []int) []*dataloader.Result[*models.Subscription] {
	latest, err := models.GetLatestSubscriptions(ctx, clientIds)
	if err != nil {
		return handleError[*models.Subscription](len(clientIds), err)
	}
	return generateLoaderResults(latest, clientIds)
}

// GetLatestSubscription is nil when the client has no subscription.
func GetLatestSubscription(ctx context.Context, clientId int) (*models.Subscription, error) {
	loaders := For(ctx)
	return loaders.latestSubscriptionLoader.Load(ctx, clientId)()
}

func GetLatestSubscriptions(ctx context.Context, clientIds []int) ([]*models.Subscription, []error) {
	loaders := For(ctx)
	return loaders.latestSubscriptionLoader.LoadMany(ctx, clientIds)()
}
