package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentaldesk-backend/internal/domain"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

type userRules struct {
	Name  string          `validate:"required"`
	Email string          `validate:"required,email"`
	Role  domain.UserRole `validate:"required,oneof=super_admin admin manager"`
}

type userService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

func requireUserManager(actor *domain.User) error {
	if actor == nil || !actor.Role.CanManageUsers() {
		return ErrForbidden
	}
	return nil
}

// Only a super admin may grant or hold the super admin role.
func checkRoleGrant(actor *domain.User, role domain.UserRole) error {
	if role == domain.UserRoleSuperAdmin && actor.Role != domain.UserRoleSuperAdmin {
		return fmt.Errorf("%w: only a super admin can assign the super admin role", ErrForbidden)
	}
	return nil
}

func (s *userService) checkUser(ctx context.Context, user *domain.User) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if err := s.validate.Struct(userRules{Name: user.Name, Email: user.Email, Role: user.Role}); err != nil {
		return invalidInput("name, a valid email and a known role are required")
	}
	existing, err := s.userRepo.GetByEmail(ctx, user.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != user.ID {
		return fmt.Errorf("%w: email %s is already in use", ErrConflict, user.Email)
	}
	return nil
}

func (s *userService) ListUsers(ctx context.Context, actor *domain.User, filter domain.UserFilter) ([]domain.User, int32, error) {
	if err := requireUserManager(actor); err != nil {
		return nil, 0, err
	}
	return s.userRepo.List(ctx, filter)
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) CreateUser(ctx context.Context, actor *domain.User, user *domain.User) error {
	if err := requireUserManager(actor); err != nil {
		return err
	}
	user.ID = 0
	if err := s.checkUser(ctx, user); err != nil {
		return err
	}
	if err := checkRoleGrant(actor, user.Role); err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	logger.InfoContext(ctx, "User created", "user_id", user.ID, "role", user.Role, "by", actor.ID)
	return nil
}

func (s *userService) UpdateUser(ctx context.Context, actor *domain.User, user *domain.User) error {
	if err := requireUserManager(actor); err != nil {
		return err
	}
	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := s.checkUser(ctx, user); err != nil {
		return err
	}
	if err := checkRoleGrant(actor, existing.Role); err != nil {
		return err
	}
	if err := checkRoleGrant(actor, user.Role); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

func (s *userService) DeleteUser(ctx context.Context, actor *domain.User, id int32) error {
	if err := requireUserManager(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return invalidInput("you cannot delete your own account")
	}
	existing, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := checkRoleGrant(actor, existing.Role); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "User deleted", "user_id", id, "by", actor.ID)
	return nil
}
