package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// LockByID locks the user row until the surrounding transaction ends.
	// It is how per-user mutations are serialized.
	LockByID(ctx context.Context, id string) (User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, newUser User) (User, error)
	// Update overwrites the mutable fields of u and bumps updated_at.
	Update(ctx context.Context, u User) (User, error)
	List(ctx context.Context) ([]User, error)
}
