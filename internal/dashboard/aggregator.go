package dashboard

import (
	"context"

	"github.com/eleven-am/taskboard/internal/models"
	"github.com/eleven-am/taskboard/internal/store"
)

// Dashboard is a user's aggregated view: their tasks plus the boards they
// are subscribed to.
type Dashboard struct {
	Tasks []models.Task
	Tags  []models.Tag
}

// Aggregator composes the dashboard view. Read-only.
type Aggregator struct {
	store *store.Store
}

// NewAggregator creates a dashboard aggregator over the given store
func NewAggregator(st *store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// ForUser returns every task created by the user and every tag the user
// subscribes to.
func (a *Aggregator) ForUser(ctx context.Context, user *models.User) (*Dashboard, error) {
	tasks, err := a.store.Tasks.ByCreator(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	tags, err := a.store.Subscriptions.TagsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{Tasks: tasks, Tags: tags}, nil
}
