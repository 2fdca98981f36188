package repository

import (
	"context"

	"guesthouse/internal/domains/room/model"
)

// Settings loads and saves the room settings document and reports saves made elsewhere.
// Load never fails on absent or unreadable data; it returns model.DefaultSettings instead.
type Settings interface {
	Load(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, settings model.Settings) error
	OnSettingsChanged(ctx context.Context, callback func(model.Settings)) (unsubscribe func())
}
