package services

import (
	"errors"
	"fmt"

	"lavka/internal/models"
	"lavka/internal/repositories"
)

// UserInput carries the fields an administrator supplies when creating a
// user. Role defaults to buyer when empty.
type UserInput struct {
	Username string
	Email    string
	Password string
	Role     models.UserRole
}

// UserUpdate carries a partial update; nil fields keep their prior value.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Role     *models.UserRole
}

// UserService handles user administration. Credential hashing is delegated
// to the AuthService so the salt lives in one place.
type UserService struct {
	userRepo repositories.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Create provisions a new user with a hashed password. A duplicate email is
// rejected with ErrEmailTaken.
func (s *UserService) Create(input UserInput) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(input.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%s: %w", input.Email, ErrEmailTaken)
	} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = models.RoleBuyer
	}
	user := &models.User{
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: hashed,
		Role:           role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get retrieves a user by id.
func (s *UserService) Get(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// List retrieves users with skip/limit pagination.
func (s *UserService) List(skip, limit int) ([]models.User, error) {
	return s.userRepo.GetAll(skip, limit)
}

// Update mutates only the supplied fields. A new password is re-hashed; a
// new email must not collide with another account.
func (s *UserService) Update(id string, update UserUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if update.Username != nil {
		fields["username"] = *update.Username
	}
	if update.Email != nil {
		if existing, err := s.userRepo.GetByEmail(*update.Email); err == nil && existing != nil && existing.ID != id {
			return nil, fmt.Errorf("%s: %w", *update.Email, ErrEmailTaken)
		}
		fields["email"] = *update.Email
	}
	if update.Password != nil {
		hashed, err := s.auth.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		fields["hashed_password"] = hashed
	}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if len(fields) == 0 {
		return s.userRepo.GetByID(id)
	}
	return s.userRepo.Update(id, fields)
}

// Delete removes a user; the store cascade removes their orders and reviews.
func (s *UserService) Delete(id string) error {
	return s.userRepo.Delete(id)
}
