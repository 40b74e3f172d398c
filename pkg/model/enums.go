package model

import "ducktodo/pkg/validation"

// Enum names usable with the `enum=<name>` validation tag.
const (
	EnumTaskStatus      = "taskStatus"
	EnumTaskPriority    = "taskPriority"
	EnumTeamStatus      = "teamStatus"
	EnumTaskGroupStatus = "taskGroupStatus"
	EnumTaskNodeStatus  = "taskNodeStatus"
	EnumUserSex         = "userSex"
	EnumUserRole        = "userRole"
	EnumUserStatus      = "userStatus"
	EnumIfOwner         = "ifOwner"
	EnumAuditAction     = "taskAuditAction"
	EnumDeleteStatus    = "deleteStatus"
	EnumInviteRole      = "inviteRole"
	EnumMemberRole      = "memberRole"
	EnumLLMThinking     = "llmThinking"
	EnumLLMModelType    = "llmModelType"
)

var (
	ResultCodeLabels = validation.Enum{
		"200": "success",
		"400": "bad request or business validation failed",
		"401": "unauthorized or token invalid",
		"403": "access denied",
		"404": "resource not found",
		"500": "internal server error",
	}

	TaskPriorityByCode = validation.Enum{
		"0": "P0|urgent",
		"1": "P1|high",
		"2": "P2|medium",
		"3": "P3|low",
		"4": "P4|lowest",
	}

	UserRoleByCode = validation.Enum{
		"0": "owner",
		"1": "manager",
		"2": "member",
	}

	// Roles a member can be given when a team is created or a role is changed.
	MemberRoleByCode = validation.Enum{
		"1": "manager",
		"2": "member",
	}

	// Roles accepted by the invite endpoint.
	InviteRoleByCode = validation.Enum{
		"2": "admin",
		"3": "member",
	}

	IfOwnerByCode = validation.Enum{
		"0": "no",
		"1": "yes",
	}

	TaskAuditActionByCode = validation.Enum{
		"CREATE":   "created",
		"UPDATE":   "updated",
		"DELETE":   "deleted",
		"COMPLETE": "completed",
		"CANCEL":   "cancelled",
		"ARCHIVE":  "archived",
		"RESTORE":  "restored",
	}

	UserStatusByCode = validation.Enum{
		"0": "disabled",
		"1": "active",
		"2": "invited",
		"3": "rejected",
	}

	statusBinaryByCode = validation.Enum{
		"0": "disabled",
		"1": "active",
	}

	TaskGroupStatusByCode = statusBinaryByCode
	TaskNodeStatusByCode  = statusBinaryByCode

	UserSexByCode = validation.Enum{
		"0": "female",
		"1": "male",
	}

	TeamStatusByCode = validation.Enum{
		"0": "disabled",
		"1": "in progress",
		"2": "finished",
	}

	TaskStatusByCode = validation.Enum{
		"0": "disabled",
		"1": "not started",
		"2": "in progress",
		"3": "completed",
		"4": "cancelled",
	}

	DeleteStatusByCode = validation.Enum{
		"0": "active",
		"1": "deleted",
	}

	LLMThinkingByCode = validation.Enum{
		"0": "off",
		"1": "on",
	}

	LLMModelTypeByCode = validation.Enum{
		"1": "chat",
		"2": "embedding",
		"3": "rerank",
	}

	PriorityColors = map[int]string{
		0: "#802520",
		1: "#B2653B",
		2: "#BA8530",
		3: "#5C7F71",
		4: "#5C7F71",
	}
)

// Enums lists every enum by its validation tag name.
func Enums() map[string]validation.Enum {
	return map[string]validation.Enum{
		EnumTaskStatus:      TaskStatusByCode,
		EnumTaskPriority:    TaskPriorityByCode,
		EnumTeamStatus:      TeamStatusByCode,
		EnumTaskGroupStatus: TaskGroupStatusByCode,
		EnumTaskNodeStatus:  TaskNodeStatusByCode,
		EnumUserSex:         UserSexByCode,
		EnumUserRole:        UserRoleByCode,
		EnumUserStatus:      UserStatusByCode,
		EnumIfOwner:         IfOwnerByCode,
		EnumAuditAction:     TaskAuditActionByCode,
		EnumDeleteStatus:    DeleteStatusByCode,
		EnumInviteRole:      InviteRoleByCode,
		EnumMemberRole:      MemberRoleByCode,
		EnumLLMThinking:     LLMThinkingByCode,
		EnumLLMModelType:    LLMModelTypeByCode,
	}
}
