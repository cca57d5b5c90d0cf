package usecase

import (
	"context"

	authdomain "sathee-backend/internal/auth/domain"
	authdto "sathee-backend/internal/auth/dto"
	authrepo "sathee-backend/internal/auth/repository"
	userdto "sathee-backend/internal/user/dto"
	"sathee-backend/pkg/apperr"
)

// UserUsecase exposes the profile operations. Authorization for
// pending-role users is owned by the admin subsystem, not enforced
// here.
type UserUsecase interface {
	GetAllUsers(ctx context.Context) ([]authdto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*authdto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, req *userdto.UpdateUserRequest) (*authdto.UserResponse, error)
}

type userUsecase struct {
	userRepo authrepo.UserRepository
}

func NewUserUsecase(userRepo authrepo.UserRepository) UserUsecase {
	return &userUsecase{userRepo: userRepo}
}

func (u *userUsecase) GetAllUsers(ctx context.Context) ([]authdto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Could not fetch users", err)
	}

	out := make([]authdto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *projection(&users[i]))
	}
	return out, nil
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*authdto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Could not fetch user", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}
	return projection(user), nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id string, req *userdto.UpdateUserRequest) (*authdto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Could not update user", err)
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Role != "" {
		switch req.Role {
		case authdomain.RolePending, authdomain.RoleUser, authdomain.RoleAdmin:
			user.Role = req.Role
		default:
			return nil, apperr.Validation("Invalid role")
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Could not update user", err)
	}
	return projection(user), nil
}

func projection(user *authdomain.User) *authdto.UserResponse {
	return &authdto.UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
	}
}
