package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/namas-shop/namas-backend/pkg/errors"
)

// Service exposes order history reads.
type Service interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	repo *Repository
}

// NewService constructs an orders service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// ListByUser returns the user's order history, newest first.
func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	dtos := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, ToDTO(&rows[i]))
	}
	return dtos, nil
}
