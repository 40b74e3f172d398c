package model

type ChildTask struct {
	ChildTaskID         string `json:"childTaskId"`
	TaskID              string `json:"taskId"`
	ChildTaskName       string `json:"childTaskName"`
	ChildTaskStatus     *int   `json:"childTaskStatus,omitempty"`
	ChildTaskIndex      int    `json:"childTaskIndex"`
	ChildTaskAssigneeID string `json:"childTaskAssigneeId"`
	DueTime             string `json:"dueTime,omitempty"`
	FinishTime          string `json:"finishTime,omitempty"`
}

type TaskSummary struct {
	TaskID          string      `json:"taskId"`
	TaskGroupID     string      `json:"taskGroupId"`
	TaskGroupName   string      `json:"taskGroupName"`
	TeamID          string      `json:"teamId,omitempty"`
	TeamName        string      `json:"teamName,omitempty"`
	TaskName        string      `json:"taskName"`
	TaskDescription string      `json:"taskDescription"`
	TaskStatus      *int        `json:"taskStatus,omitempty"`
	TaskPriority    *int        `json:"taskPriority,omitempty"`
	StartTime       string      `json:"startTime,omitempty"`
	DueTime         string      `json:"dueTime,omitempty"`
	FinishTime      string      `json:"finishTime,omitempty"`
	IsOwner         int         `json:"isOwner"`
	ChildTaskList   []ChildTask `json:"childTaskList,omitempty"`
}

type TaskHelper struct {
	TaskUserRelationshipID string `json:"taskUserRelationshipId"`
	UserID                 string `json:"userId"`
	IfOwner                bool   `json:"ifOwner"`
	UserName               string `json:"userName"`
	UserEmail              string `json:"userEmail,omitempty"`
	UserPhone              string `json:"userPhone,omitempty"`
	UserSex                *int   `json:"userSex,omitempty"`
	UserAvatar             string `json:"userAvatar,omitempty"`
}

type TaskDetail struct {
	TaskSummary
	TaskHelperList []TaskHelper `json:"taskHelperList,omitempty"`
	Attachments    []TaskFile   `json:"attachments,omitempty"`
}

type TaskUserRelation struct {
	TaskUserRelationID string `json:"taskUserRelationId"`
	TaskID             string `json:"taskId"`
	UserID             string `json:"userId"`
	IfOwner            int    `json:"ifOwner"`
	CreateTime         string `json:"createTime,omitempty"`
}

type TaskAudit struct {
	AuditID           string `json:"auditId"`
	TaskID            string `json:"taskId"`
	OperatorID        string `json:"operatorId"`
	ActionType        string `json:"actionType"`
	ActionDescription string `json:"actionDescription"`
	CreateTime        string `json:"createTime,omitempty"`
}

type TaskFile struct {
	TaskFileID     string `json:"taskFileId"`
	TaskID         string `json:"taskId"`
	UploaderUserID string `json:"uploaderUserId"`
	TaskFileName   string `json:"taskFileName"`
	TaskFilePath   string `json:"taskFilePath,omitempty"`
	TaskFileType   string `json:"taskFileType"`
	TaskFileSize   int64  `json:"taskFileSize"`
	TaskFileRemark string `json:"taskFileRemark,omitempty"`
	UploadTime     string `json:"uploadTime,omitempty"`
}

type NewChildTask struct {
	ChildTaskName   string `json:"childTaskName" validate:"notblank,tmin=2"`
	ChildTaskStatus *int   `json:"childTaskStatus,omitempty" validate:"omitempty,enum=taskStatus"`
	DueTime         string `json:"dueTime" validate:"notblank,localdate"`
	AssigneeUserID  string `json:"assigneeUserId" validate:"notblank"`
}

type CreateTaskRequest struct {
	TaskGroupID      string         `json:"taskGroupId" validate:"notblank"`
	TaskName         string         `json:"taskName" validate:"notblank,tmin=2"`
	TaskDescription  string         `json:"taskDescription"`
	TaskStatus       *int           `json:"taskStatus,omitempty" validate:"omitempty,enum=taskStatus"`
	TaskPriority     *int           `json:"taskPriority,omitempty" validate:"omitempty,enum=taskPriority"`
	StartTime        string         `json:"startTime,omitempty" validate:"omitempty,localdate"`
	DueTime          string         `json:"dueTime" validate:"notblank,localdate"`
	HelperUserIDList []string       `json:"helperUserIdList"`
	ChildTaskList    []NewChildTask `json:"childTaskList" validate:"dive"`
}

// UpdateTaskRequest only sends the fields that are set.
type UpdateTaskRequest struct {
	TaskID          string  `json:"taskId" validate:"notblank"`
	TaskName        *string `json:"taskName,omitempty" validate:"omitempty,notblank,tmin=2"`
	TaskDescription *string `json:"taskDescription,omitempty"`
	TaskStatus      *int    `json:"taskStatus,omitempty" validate:"omitempty,enum=taskStatus"`
	TaskPriority    *int    `json:"taskPriority,omitempty" validate:"omitempty,enum=taskPriority"`
	StartTime       *string `json:"startTime,omitempty"`
	DueTime         *string `json:"dueTime,omitempty"`
	FinishTime      *string `json:"finishTime,omitempty"`
}

type AddChildTaskRequest struct {
	TaskID              string `json:"taskId" validate:"notblank"`
	ChildTaskName       string `json:"childTaskName" validate:"notblank,tmin=2"`
	ChildTaskStatus     *int   `json:"childTaskStatus,omitempty" validate:"omitempty,enum=taskStatus"`
	DueTime             string `json:"dueTime" validate:"notblank,localdate"`
	ChildTaskAssigneeID string `json:"childTaskAssigneeId" validate:"notblank"`
}

type UpdateChildTaskRequest struct {
	ChildTaskID         string  `json:"childTaskId" validate:"notblank"`
	ChildTaskName       *string `json:"childTaskName,omitempty"`
	ChildTaskStatus     *int    `json:"childTaskStatus,omitempty" validate:"omitempty,enum=taskStatus"`
	DueTime             *string `json:"dueTime,omitempty"`
	ChildTaskAssigneeID *string `json:"childTaskAssigneeId,omitempty"`
}

// TaskQuery filters the task list endpoints. SortByMode accepts "byPriority"
// or a numeric mode; TaskStatus and TaskPriority are comma separated lists.
type TaskQuery struct {
	Page         int
	Size         int
	TaskName     string
	TaskStatus   string
	TaskPriority string
	StartDueTime string
	EndDueTime   string
	SortByMode   string
	RelatedToMe  *bool
	TaskGroupIDs []string
}

// ScheduleQuery selects one month of the calendar view.
type ScheduleQuery struct {
	Year         int
	Month        int
	TaskGroupIDs []string
	SortByMode   string
}
