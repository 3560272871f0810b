package users

import (
	"context"

	"github.com/dsemenov/authkeeper/internal/server/models"
)

// Repository is the credential store contract. Create reports
// common.ErrUsernameTaken when the uniqueness constraint fires; the lookup
// methods report common.ErrorNotFound for missing rows.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
