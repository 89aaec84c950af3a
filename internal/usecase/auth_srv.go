package usecase

import (
	"context"
	"fmt"

	"resto-client/internal/data/entity"
	"resto-client/internal/data/repository"
	"resto-client/internal/dto/request"
	"resto-client/internal/session"
	"resto-client/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*entity.User, error)
	CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*entity.User, error)
	Current() *entity.User
	IsAuthenticated() bool
	IsAdmin() bool
}

type authService struct {
	repo *repository.Repository
	sess *session.Store
	m    mutator
	log  *zap.Logger
}

func NewAuthService(repo *repository.Repository, sess *session.Store, m mutator, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		sess: sess,
		m:    m,
		log:  log,
	}
}

// Login creates-or-fetches the user server-side and persists the
// identity locally. Idempotent for the same name+cellphone pair.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user *entity.User
	err := s.m.run(ctx, "Login", func(ctx context.Context) error {
		var err error
		user, err = s.repo.Auth.Login(ctx, req)
		return err
	}, invalidation{})
	if err != nil {
		return nil, err
	}

	if err := s.sess.Login(user); err != nil {
		s.log.Error("Failed to persist session", zap.Error(err))
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.Info("Logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)
	s.m.notifier.Success(fmt.Sprintf("Welcome, %s!", user.Name))

	return user, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.sess.Logout(); err != nil {
		s.log.Error("Logout failed", zap.Error(err))
		return err
	}
	return nil
}

// Profile re-fetches the logged-in identity from the server and
// refreshes the persisted copy.
func (s *authService) Profile(ctx context.Context) (*entity.User, error) {
	current := s.sess.Current()
	if current == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := s.repo.Auth.Profile(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sess.Login(user); err != nil {
		s.log.Warn("Could not refresh persisted identity", zap.Error(err))
	}

	return user, nil
}

func (s *authService) CreateAdmin(ctx context.Context, req *request.CreateAdminRequest) (*entity.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create admin validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user *entity.User
	err := s.m.run(ctx, "Create admin", func(ctx context.Context) error {
		var err error
		user, err = s.repo.Auth.CreateAdmin(ctx, req)
		return err
	}, invalidation{})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Current() *entity.User {
	return s.sess.Current()
}

func (s *authService) IsAuthenticated() bool {
	return s.sess.IsAuthenticated()
}

func (s *authService) IsAdmin() bool {
	return s.sess.IsAdmin()
}
