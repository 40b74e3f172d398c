package api

import (
	"context"

	"ducktodo/pkg/model"
	"ducktodo/pkg/sanitizer"
	"ducktodo/pkg/validation"
)

type BaseService interface {
	Health(ctx context.Context) (*model.Health, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResult, error)
	Logout(ctx context.Context) error
}

type baseService struct {
	deps
}

func newBaseService(d deps) BaseService {
	return &baseService{deps: d}
}

func (s *baseService) Health(ctx context.Context) (*model.Health, error) {
	var health model.Health
	if err := s.client.Get(ctx, "/base/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Login accepts a user name or an email. The name wins when both are given;
// a given email must still be well formed.
func (s *baseService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error) {
	req.UserName = validation.Trim(req.UserName)
	req.UserEmail = validation.Trim(req.UserEmail)
	req.UserPassword = validation.Trim(req.UserPassword)

	if req.UserName == "" && req.UserEmail == "" {
		return nil, invalid("userName", "userName or userEmail is required")
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	if req.UserName != "" {
		req.UserEmail = ""
	}

	var result model.LoginResult
	if err := s.client.Post(ctx, "/base/login", req, &result); err != nil {
		return nil, err
	}
	s.log.Info("Logged in", "user_id", userID(result.User))
	return &result, nil
}

func (s *baseService) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResult, error) {
	req.UserName = validation.Trim(req.UserName)
	req.UserEmail = validation.Trim(req.UserEmail)
	req.UserPassword = validation.Trim(req.UserPassword)
	req.UserPhone = sanitizer.NormalizePhone(req.UserPhone)

	if err := s.check(req); err != nil {
		return nil, err
	}

	var result model.LoginResult
	if err := s.client.Post(ctx, "/base/register", req, &result); err != nil {
		return nil, err
	}
	s.log.Info("Registered", "user_id", userID(result.User))
	return &result, nil
}

// Logout tells the gateway and then drops the local token, even when the
// gateway call failed.
func (s *baseService) Logout(ctx context.Context) error {
	err := s.client.Post(ctx, "/base/logout", nil, nil)
	s.client.Tokens().Clear()
	return err
}

func userID(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.UserID
}
