package repository

import (
	"context"

	"github.com/tgcloud/tgcloud/internal/domain/entities"
)

// SessionRepository persists session bindings so they survive a restart.
type SessionRepository interface {
	Save(ctx context.Context, session *entities.Session) error
	GetByID(ctx context.Context, id string) (*entities.Session, error)
	List(ctx context.Context) ([]*entities.Session, error)
	Delete(ctx context.Context, id string) error
}
