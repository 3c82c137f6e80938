package hedgehog

import (
	"context"
	"log/slog"
)

// Service is the application layer between the routes and the repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetAllHedgehogs(ctx context.Context) ([]ListItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to retrieve hedgehogs list", "error", err)
		return nil, NewDatabaseError(err)
	}
	if items == nil {
		items = []ListItem{}
	}
	return items, nil
}

// GetHedgehogByID returns found == false when the id has no row.
func (s *Service) GetHedgehogByID(ctx context.Context, id int64) (Hedgehog, bool, error) {
	h, found, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.DebugContext(ctx, "failed to retrieve hedgehog", "id", id, "error", err)
		return Hedgehog{}, false, NewDatabaseError(err)
	}
	return h, found, nil
}

// CreateHedgehog validates in and stores it. Rejected input yields a
// *ValidationError carrying every violation.
func (s *Service) CreateHedgehog(ctx context.Context, in Input) (Hedgehog, error) {
	if violations := Validate(&in); len(violations) > 0 {
		return Hedgehog{}, &ValidationError{Message: "Invalid hedgehog data", Violations: violations}
	}
	h, err := s.repo.Create(ctx, in.NewHedgehog())
	if err != nil {
		s.logger.DebugContext(ctx, "failed to create hedgehog", "error", err)
		return Hedgehog{}, NewDatabaseError(err)
	}
	s.logger.InfoContext(ctx, "hedgehog created", "id", h.ID)
	return h, nil
}
