package repository

import (
	"context"
	"fmt"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/request"
	"resto-client/internal/dto/response"
	"resto-client/pkg/restapi"

	"go.uber.org/zap"
)

type AuthRepository interface {
	Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error)
	Profile(ctx context.Context, userID string) (*entity.User, error)
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*entity.User, error)
}

type authRepository struct {
	api *restapi.Client
	log *zap.Logger
}

func NewAuthRepository(api *restapi.Client, log *zap.Logger) AuthRepository {
	return &authRepository{
		api: api,
		log: log,
	}
}

// Login creates-or-fetches the user identified by name+cellphone.
func (ar *authRepository) Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	var resp response.LoginResponse
	if err := ar.api.Post(ctx, "/api/auth/login", req, &resp); err != nil {
		ar.log.Error("Login request failed",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("login %s: %w", req.Name, err)
	}

	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("login rejected: %s", resp.Message)
	}

	return resp.User, nil
}

func (ar *authRepository) Profile(ctx context.Context, userID string) (*entity.User, error) {
	var resp response.UserResponse
	if err := ar.api.Get(ctx, "/api/auth/profile/"+userID, nil, &resp); err != nil {
		ar.log.Error("Profile request failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("fetch profile %s: %w", userID, err)
	}

	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("fetch profile rejected: %s", resp.Message)
	}

	return resp.User, nil
}

func (ar *authRepository) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*entity.User, error) {
	var resp response.LoginResponse
	if err := ar.api.Post(ctx, "/api/auth/create-admin", req, &resp); err != nil {
		ar.log.Error("Create admin request failed",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create admin %s: %w", req.Name, err)
	}

	if !resp.Success || resp.User == nil {
		return nil, fmt.Errorf("create admin rejected: %s", resp.Message)
	}

	return resp.User, nil
}
