package model

type Team struct {
	TeamID          string `json:"teamId"`
	TeamName        string `json:"teamName"`
	TeamAvatar      string `json:"teamAvatar,omitempty"`
	TeamDescription string `json:"teamDescription"`
	TeamStatus      *int   `json:"teamStatus,omitempty"`
	MemberRole      *int   `json:"memberRole,omitempty"`
	MemberStatus    *int   `json:"memberStatus,omitempty"`
	TeamIndex       int    `json:"teamIndex"`
	TeamColor       string `json:"teamColor,omitempty"`
	JoinTime        string `json:"joinTime,omitempty"`
}

type InvitedMember struct {
	UserID     string `json:"userId" validate:"notblank"`
	MemberRole *int   `json:"memberRole" validate:"required,enum=memberRole"`
}

type CreateTeamRequest struct {
	TeamName          string          `json:"teamName" validate:"notblank,tmin=2"`
	TeamDescription   string          `json:"teamDescription"`
	TeamAvatar        string          `json:"teamAvatar"`
	TeamStatus        *int            `json:"teamStatus,omitempty" validate:"omitempty,enum=teamStatus"`
	InvitedMemberList []InvitedMember `json:"invitedMemberList" validate:"dive"`
}

type UpdateTeamRequest struct {
	TeamID          string  `json:"teamId" validate:"notblank"`
	TeamName        string  `json:"teamName,omitempty" validate:"omitempty,tmin=2"`
	TeamDescription *string `json:"teamDescription,omitempty"`
	TeamStatus      *int    `json:"teamStatus,omitempty" validate:"omitempty,enum=teamStatus"`
}

type TeamMemberQuery struct {
	Page       int
	Size       int
	UserName   string
	MemberRole string
	UserStatus *int
	Invited    *bool
}

type TeamMember struct {
	TeamUserRelationshipID string `json:"teamUserRelationshipId"`
	TeamID                 string `json:"teamId"`
	MemberRole             *int   `json:"memberRole,omitempty"`
	MemberStatus           *int   `json:"memberStatus,omitempty"`
	TeamIndex              int    `json:"teamIndex"`
	TeamColor              string `json:"teamColor,omitempty"`
	JoinTime               string `json:"joinTime,omitempty"`
	UserID                 string `json:"userId"`
	UserName               string `json:"userName"`
	UserEmail              string `json:"userEmail,omitempty"`
	UserPhone              string `json:"userPhone,omitempty"`
	UserSex                *int   `json:"userSex,omitempty"`
	UserAvatar             string `json:"userAvatar,omitempty"`
}

type InviteMemberRequest struct {
	TeamID   string `json:"-" validate:"notblank"`
	UserID   string `json:"userId" validate:"notblank"`
	UserRole *int   `json:"userRole" validate:"required,enum=inviteRole"`
}

type UpdateMemberRoleRequest struct {
	TeamID   string `json:"-" validate:"notblank"`
	UserID   string `json:"-" validate:"notblank"`
	UserRole *int   `json:"userRole" validate:"required,enum=memberRole"`
}

type SwapTeamOrderRequest struct {
	TeamIDA string `json:"teamIdA" validate:"notblank"`
	TeamIDB string `json:"teamIdB" validate:"notblank,nefield=TeamIDA"`
}

// InviteQuery pages the caller's team invitations. MemberStatus defaults to "2" (invited).
type InviteQuery struct {
	Page         int
	Size         int
	MemberStatus string
	TeamName     string
}
