package model

type User struct {
	UserID        string `json:"userId"`
	UserName      string `json:"userName"`
	UserEmail     string `json:"userEmail"`
	UserPhone     string `json:"userPhone"`
	UserSex       *int   `json:"userSex,omitempty"`
	UserAvatar    string `json:"userAvatar,omitempty"`
	UserRemark    string `json:"userRemark,omitempty"`
	LastLoginTime string `json:"lastLoginTime,omitempty"`
	CreateTime    string `json:"createTime,omitempty"`
	UpdateTime    string `json:"updateTime,omitempty"`
}

// LoginResult is what login and register resolve to.
type LoginResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type Health struct {
	Status      string `json:"status"`
	AppName     string `json:"appName"`
	Version     string `json:"version"`
	ServerTime  string `json:"serverTime"`
	Timestamp   int64  `json:"timestamp"`
	StoragePath string `json:"storagePath,omitempty"`
}

type LoginRequest struct {
	UserName     string `json:"userName,omitempty"`
	UserEmail    string `json:"userEmail,omitempty" validate:"omitempty,email_addr"`
	UserPassword string `json:"userPassword" validate:"notblank"`
}

type RegisterRequest struct {
	UserName     string `json:"userName" validate:"notblank"`
	UserEmail    string `json:"userEmail" validate:"notblank,email_addr"`
	UserPassword string `json:"userPassword" validate:"notblank,password8"`
	UserPhone    string `json:"userPhone" validate:"notblank,phone11"`
	UserSex      *int   `json:"userSex" validate:"required,enum=userSex"`
}

type UpdateMeRequest struct {
	UserEmail  *string `json:"userEmail,omitempty"`
	UserPhone  *string `json:"userPhone,omitempty"`
	UserSex    *int    `json:"userSex,omitempty" validate:"omitempty,enum=userSex"`
	UserRemark *string `json:"userRemark,omitempty"`
}

type UpdatePasswordRequest struct {
	OriginalPassword string `json:"originalPassword" validate:"notblank"`
	NewPassword      string `json:"newPassword" validate:"notblank,password8"`
}

type AccessKeys struct {
	UserAccesskey string `json:"userAccesskey" validate:"notblank"`
	UserSecretkey string `json:"userSecretkey" validate:"notblank"`
}

type ListUsersQuery struct {
	Page      int
	Size      int
	UserName  string
	UserEmail string
	UserPhone string
}

// Page is the paged list shape returned by list endpoints.
type Page[T any] struct {
	Records []T   `json:"records"`
	Total   int64 `json:"total"`
	Size    int   `json:"size"`
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
}
