package model

type TaskGroup struct {
	TaskGroupID      string `json:"taskGroupId"`
	TeamID           string `json:"teamId,omitempty"`
	GroupName        string `json:"groupName"`
	GroupDescription string `json:"groupDescription"`
	GroupStatus      *int   `json:"groupStatus,omitempty"`
	UserRole         *int   `json:"userRole,omitempty"`
	GroupAlias       string `json:"groupAlias,omitempty"`
	GroupColor       string `json:"groupColor,omitempty"`
	GroupIndex       int    `json:"groupIndex"`
	IsPrivate        bool   `json:"isPrivate"`
	TeamName         string `json:"teamName,omitempty"`
}

type CreateTaskGroupRequest struct {
	GroupName        string `json:"groupName" validate:"notblank,tmin=2"`
	GroupDescription string `json:"groupDescription"`
	GroupStatus      *int   `json:"groupStatus,omitempty" validate:"omitempty,enum=taskGroupStatus"`
	GroupColor       string `json:"groupColor,omitempty" validate:"omitempty,hex6"`
}

type UpdateTaskGroupRequest struct {
	TaskGroupID      string  `json:"taskGroupId" validate:"notblank"`
	GroupName        string  `json:"groupName" validate:"notblank,tmin=2"`
	GroupDescription *string `json:"groupDescription,omitempty"`
	GroupStatus      *int    `json:"groupStatus,omitempty" validate:"omitempty,enum=taskGroupStatus"`
}

type SwapTaskGroupOrderRequest struct {
	TaskGroupIDA string `json:"taskGroupIdA" validate:"notblank"`
	TaskGroupIDB string `json:"taskGroupIdB" validate:"notblank,nefield=TaskGroupIDA"`
}

type TaskGroupMember struct {
	TaskGroupUserRelationID string `json:"taskGroupUserRelationId"`
	TaskGroupID             string `json:"taskGroupId"`
	UserRole                *int   `json:"userRole,omitempty"`
	UserStatus              *int   `json:"userStatus,omitempty"`
	GroupIndex              int    `json:"groupIndex"`
	GroupColor              string `json:"groupColor,omitempty"`
	GroupAlias              string `json:"groupAlias,omitempty"`
	JoinTime                string `json:"joinTime,omitempty"`
	UserID                  string `json:"userId"`
	UserName                string `json:"userName"`
	UserEmail               string `json:"userEmail,omitempty"`
	UserPhone               string `json:"userPhone,omitempty"`
	UserAvatar              string `json:"userAvatar,omitempty"`
}
