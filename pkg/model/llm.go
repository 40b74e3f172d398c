package model

import "encoding/json"

type LLMConfig struct {
	LLMConfigID         string   `json:"llmConfigId,omitempty"`
	LLMProvider         string   `json:"llmProvider"`
	LLMAPIKey           string   `json:"llmApiKey,omitempty"`
	LLMAPIURL           string   `json:"llmApiUrl"`
	LLMModelName        string   `json:"llmModelName"`
	LLMModelTemperature *float64 `json:"llmModelTemperature,omitempty"`
	LLMModelThinking    *int     `json:"llmModelThinking,omitempty"`
}

type CreateLLMConfigRequest struct {
	LLMProvider         string   `json:"llmProvider" validate:"notblank"`
	LLMAPIKey           string   `json:"llmApiKey" validate:"notblank"`
	LLMAPIURL           string   `json:"llmApiUrl" validate:"notblank"`
	LLMModelName        string   `json:"llmModelName" validate:"notblank"`
	LLMModelTemperature *float64 `json:"llmModelTemperature,omitempty"`
	LLMModelThinking    *int     `json:"llmModelThinking,omitempty" validate:"omitempty,enum=llmThinking"`
}

type UpdateLLMConfigRequest struct {
	LLMProvider         *string  `json:"llmProvider,omitempty"`
	LLMAPIKey           *string  `json:"llmApiKey,omitempty"`
	LLMAPIURL           *string  `json:"llmApiUrl,omitempty"`
	LLMModelName        *string  `json:"llmModelName,omitempty"`
	LLMModelTemperature *float64 `json:"llmModelTemperature,omitempty"`
	LLMModelThinking    *int     `json:"llmModelThinking,omitempty" validate:"omitempty,enum=llmThinking"`
}

const ProviderOpenAICompatible = "openai-compatible"

// ConnectivityRequest is sent to the AI backend, which uses snake_case field names.
type ConnectivityRequest struct {
	LLMProvider         string   `json:"llm_provider" validate:"notblank"`
	LLMAPIKey           string   `json:"llm_api_key" validate:"notblank"`
	LLMAPIURL           string   `json:"llm_api_url,omitempty"`
	LLMModelName        string   `json:"llm_model_name" validate:"notblank"`
	LLMModelType        *int     `json:"llm_model_type" validate:"required,enum=llmModelType"`
	LLMModelTemperature *float64 `json:"llm_model_temperature,omitempty"`
	LLMModelThinking    *int     `json:"llm_model_thinking,omitempty"`
}

type GenerateReportRequest struct {
	LLMConfigID         string `json:"llm_config_id" validate:"notblank"`
	TodayFinishTaskList any    `json:"today_finish_task_list"`
}

type ReportToolConfigRequest struct {
	LLMConfigID string `json:"llm_config_id" validate:"notblank"`
}

type DingTalkRobot struct {
	RobotID              string `json:"robotId,omitempty"`
	RobotName            string `json:"robotName" validate:"notblank"`
	DingtalkRobotToken   string `json:"dingtalkRobotToken" validate:"notblank"`
	DingtalkRobotSecret  string `json:"dingtalkRobotSecret" validate:"notblank"`
	DingtalkRobotKeyword string `json:"dingtalkRobotKeyword" validate:"notblank"`
}

type UpdateDingTalkRobotRequest struct {
	RobotName            *string `json:"robotName,omitempty"`
	DingtalkRobotToken   *string `json:"dingtalkRobotToken,omitempty"`
	DingtalkRobotSecret  *string `json:"dingtalkRobotSecret,omitempty"`
	DingtalkRobotKeyword *string `json:"dingtalkRobotKeyword,omitempty"`
}

// CompletedTask is one entry of the daily report input: a finished task and
// its finished child tasks, as the AI backend renders them.
type CompletedTask struct {
	Task       json.RawMessage   `json:"task"`
	ChildTasks []json.RawMessage `json:"child_tasks"`
}

type DailyReport struct {
	TodayFinishTasksReport  string `json:"today_finish_tasks_report"`
	TomorrowTodoTasksReport string `json:"tomorrow_todo_tasks_report"`
	ThinkReport             string `json:"think_report"`
}
