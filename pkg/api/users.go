package api

import (
	"context"
	"strings"

	"ducktodo/pkg/client"
	"ducktodo/pkg/model"
	"ducktodo/pkg/sanitizer"
	"ducktodo/pkg/validation"
)

type UserService interface {
	GetMe(ctx context.Context) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	UpdateMe(ctx context.Context, req model.UpdateMeRequest) (*model.User, error)
	UpdatePassword(ctx context.Context, req model.UpdatePasswordRequest) error
	GetAccessKeys(ctx context.Context) (*model.AccessKeys, error)
	UpdateAccessKeys(ctx context.Context, req model.AccessKeys) (*model.AccessKeys, error)
	DeleteAccessKeys(ctx context.Context) error
	UpdateAvatar(ctx context.Context, file client.File) (*model.User, error)
	ListUsers(ctx context.Context, q model.ListUsersQuery) (*model.Page[model.User], error)
}

type userService struct {
	deps
}

func newUserService(d deps) UserService {
	return &userService{deps: d}
}

func (s *userService) GetMe(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.client.Get(ctx, "/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	id, err := requireID("userId", userID)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := s.client.Get(ctx, pathf("/user/%s", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe sends only the fields that are set. Blank email and phone values
// are sent as they are; non-blank ones must be well formed.
func (s *userService) UpdateMe(ctx context.Context, req model.UpdateMeRequest) (*model.User, error) {
	req.UserEmail = trimPtr(req.UserEmail)
	if req.UserPhone != nil {
		phone := sanitizer.NormalizePhone(*req.UserPhone)
		req.UserPhone = &phone
	}
	req.UserRemark = trimPtr(req.UserRemark)

	if req.UserEmail != nil && *req.UserEmail != "" && !validation.IsValidEmail(*req.UserEmail) {
		return nil, invalid("userEmail", "userEmail is not a valid email address")
	}
	if req.UserPhone != nil && *req.UserPhone != "" && !validation.IsValidPhone(*req.UserPhone) {
		return nil, invalid("userPhone", "userPhone must be an 11-digit phone number")
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	var user model.User
	if err := s.client.Put(ctx, "/user/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdatePassword(ctx context.Context, req model.UpdatePasswordRequest) error {
	req.OriginalPassword = validation.Trim(req.OriginalPassword)
	req.NewPassword = validation.Trim(req.NewPassword)
	if err := s.check(req); err != nil {
		return err
	}
	return s.client.Put(ctx, "/user/me/password", req, nil)
}

func (s *userService) GetAccessKeys(ctx context.Context) (*model.AccessKeys, error) {
	var keys model.AccessKeys
	if err := s.client.Get(ctx, "/user/me/access-keys", nil, &keys); err != nil {
		return nil, err
	}
	return &keys, nil
}

func (s *userService) UpdateAccessKeys(ctx context.Context, req model.AccessKeys) (*model.AccessKeys, error) {
	req.UserAccesskey = validation.Trim(req.UserAccesskey)
	req.UserSecretkey = validation.Trim(req.UserSecretkey)
	if err := s.check(req); err != nil {
		return nil, err
	}
	var keys model.AccessKeys
	if err := s.client.Put(ctx, "/user/me/access-keys", req, &keys); err != nil {
		return nil, err
	}
	return &keys, nil
}

func (s *userService) DeleteAccessKeys(ctx context.Context) error {
	return s.client.Delete(ctx, "/user/me/access-keys", nil, nil)
}

// UpdateAvatar only accepts image content types.
func (s *userService) UpdateAvatar(ctx context.Context, file client.File) (*model.User, error) {
	if file.Reader == nil {
		return nil, invalid("file", "file is required")
	}
	if !strings.HasPrefix(strings.ToLower(file.ContentType), "image/") {
		return nil, invalid("file", "only image files are supported, got %q", file.ContentType)
	}
	var user model.User
	if err := s.client.Upload(ctx, "/user/me/avatar", file, client.DefaultFileField, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) ListUsers(ctx context.Context, q model.ListUsersQuery) (*model.Page[model.User], error) {
	query := pageQuery(q.Page, q.Size)
	setIfNotBlank(query, "userName", q.UserName)
	setIfNotBlank(query, "userEmail", q.UserEmail)
	setIfNotBlank(query, "userPhone", q.UserPhone)

	var page model.Page[model.User]
	if err := s.client.Get(ctx, "/user", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
