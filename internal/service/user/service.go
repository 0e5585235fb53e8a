package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	hashCost int
}

func NewUserService(userRepository user.UserRepository, hashCost int) user.UserService {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &UserServiceImpl{
		UserRepository: userRepository,
		hashCost:       hashCost,
	}
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, actor user.Actor, req user.CreateUserRequest) (user.UserResponse, error) {
	if !actor.IsAuthenticated() {
		return user.UserResponse{}, user.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionUserManage) {
		return user.UserResponse{}, user.ErrInsufficientRole
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.UserResponse{}, user.ErrUserEmailExists
	} else if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, user.User{
		ID:           id.String(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: &hashed,
		Status:       user.StatusActive,
		Role:         role,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user created", "user_id", created.ID, "role", created.Role, "created_by", actor.UserID)
	return user.ToResponse(created), nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, actor user.Actor) ([]user.UserResponse, error) {
	if !actor.IsAuthenticated() {
		return nil, user.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionUserView) {
		return nil, user.ErrInsufficientRole
	}

	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.ToResponse(u))
	}
	return resp, nil
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, actor user.Actor, id string) (user.UserResponse, error) {
	if !actor.IsAuthenticated() {
		return user.UserResponse{}, user.ErrUnauthenticated
	}
	if !actor.IsSelf(id) && !actor.Can(user.PermissionUserView) {
		return user.UserResponse{}, user.ErrInsufficientRole
	}

	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// guardTarget enforces the rules shared by Update and Deactivate and returns the stored user.
func (s *UserServiceImpl) guardTarget(ctx context.Context, actor user.Actor, id string) (user.User, error) {
	if !actor.IsAuthenticated() {
		return user.User{}, user.ErrUnauthenticated
	}
	if !actor.Can(user.PermissionUserUpdate) {
		return user.User{}, user.ErrInsufficientRole
	}

	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	if target.Role == user.RoleAdmin && actor.Role != user.RoleAdmin {
		return user.User{}, user.ErrAdminRoleReserved
	}
	return target, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, actor user.Actor, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	target, err := s.guardTarget(ctx, actor, id)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Role != nil {
		role, err := user.ParseRole(*req.Role)
		if err != nil {
			return user.UserResponse{}, err
		}
		if role == user.RoleAdmin && actor.Role != user.RoleAdmin {
			return user.UserResponse{}, user.ErrAdminRoleReserved
		}
		target.Role = role
	}

	if req.Status != nil {
		status := user.Status(*req.Status)
		if status == user.StatusInactive && actor.IsSelf(id) {
			return user.UserResponse{}, user.ErrSelfDeactivation
		}
		target.Status = status
	}

	if req.Email != nil && *req.Email != target.Email {
		if _, err := s.UserRepository.GetByEmail(ctx, *req.Email); err == nil {
			return user.UserResponse{}, user.ErrUserEmailExists
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		target.Email = *req.Email
	}

	if req.FirstName != nil {
		target.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		target.LastName = *req.LastName
	}
	if req.Password != nil {
		hashed, err := s.hashPassword(*req.Password)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = &hashed
	}

	updated, err := s.UserRepository.Update(ctx, target)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user updated", "user_id", updated.ID, "role", updated.Role, "status", updated.Status, "updated_by", actor.UserID)
	return user.ToResponse(updated), nil
}

// Deactivate implements user.UserService.
func (s *UserServiceImpl) Deactivate(ctx context.Context, actor user.Actor, id string) (user.UserResponse, error) {
	target, err := s.guardTarget(ctx, actor, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	if actor.IsSelf(id) {
		return user.UserResponse{}, user.ErrSelfDeactivation
	}
	if target.Status == user.StatusInactive {
		return user.ToResponse(target), nil
	}

	target.Status = user.StatusInactive
	updated, err := s.UserRepository.Update(ctx, target)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("user deactivated", "user_id", updated.ID, "deactivated_by", actor.UserID)
	return user.ToResponse(updated), nil
}
