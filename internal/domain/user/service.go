package user

import "context"

type UserService interface {
	Create(ctx context.Context, actor Actor, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context, actor Actor) ([]UserResponse, error)
	Get(ctx context.Context, actor Actor, id string) (UserResponse, error)
	Update(ctx context.Context, actor Actor, id string, req UpdateUserRequest) (UserResponse, error)
	// Deactivate marks the account INACTIVE; users are never deleted.
	Deactivate(ctx context.Context, actor Actor, id string) (UserResponse, error)
}
