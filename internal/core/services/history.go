package services

import (
	"context"

	"github.com/lociq/sdlsplit/internal/core/domain"
	"github.com/lociq/sdlsplit/internal/core/ports/driven"
	"github.com/lociq/sdlsplit/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes recorded operations to the CLI.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List implements driving.HistoryService.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.Operation, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.List(ctx, limit)
}
