package service

import (
	"workhub/internal/api/dto"
	"workhub/internal/api/models"
	"workhub/internal/api/permissions"
	"workhub/internal/api/repository"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserResponse, error)
	UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
	List(page, pageSize int) (*dto.PaginatedUserResponse, error)
	GetByUsername(username string) (*dto.UserResponse, error)
	AdminCreate(req dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	AdminUpdate(username string, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error)
	Delete(username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateProfile edits the caller's own record. The role field is not part
// of the request shape: only the admin surface can change roles.
func (s *userService) UpdateProfile(userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailFree(*req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) List(page, pageSize int) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(page, pageSize)
	if err != nil {
		return nil, err
	}

	userResponses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		userResponses = append(userResponses, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginatedUserResponse(userResponses, int(total), page, pageSize), nil
}

func (s *userService) GetByUsername(username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// AdminCreate provisions an account directly. The account has no pending
// code; its owner runs signup later to obtain one.
func (s *userService) AdminCreate(req dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindByUsername(req.Username); err != nil && !repository.IsNotFound(err) {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	if err := s.checkEmailFree(req.Email, ""); err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     string(permissions.RoleUser),
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// AdminUpdate is the only path that mutates a user's role.
func (s *userService) AdminUpdate(username string, req dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err := s.checkEmailFree(*req.Email, user.ID); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Delete(username string) error {
	if err := s.userRepo.Delete(username); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) checkEmailFree(email, selfID string) error {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !repository.IsNotFound(err) {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return ErrEmailTaken
	}
	return nil
}
