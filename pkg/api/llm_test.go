package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	apperrors "ducktodo/pkg/errors"
	"ducktodo/pkg/logger"
	"ducktodo/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestTestLLMConnectivity_Validation(t *testing.T) {
	valid := func() model.ConnectivityRequest {
		return model.ConnectivityRequest{
			LLMProvider:  "deepseek",
			LLMAPIKey:    "sk-1",
			LLMModelName: "deepseek-chat",
			LLMModelType: intPtr(1),
		}
	}

	tests := []struct {
		name   string
		mutate func(r *model.ConnectivityRequest)
		field  string
	}{
		{"missing api key", func(r *model.ConnectivityRequest) { r.LLMAPIKey = "  " }, "llm_api_key"},
		{"missing model type", func(r *model.ConnectivityRequest) { r.LLMModelType = nil }, "llm_model_type"},
		{"unknown model type", func(r *model.ConnectivityRequest) { r.LLMModelType = intPtr(9) }, "llm_model_type"},
		{"openai-compatible without url", func(r *model.ConnectivityRequest) { r.LLMProvider = model.ProviderOpenAICompatible }, "llm_api_url"},
		{"temperature above one", func(r *model.ConnectivityRequest) { r.LLMModelTemperature = floatPtr(1.5) }, "llm_model_temperature"},
		{"thinking out of range", func(r *model.ConnectivityRequest) { r.LLMModelThinking = intPtr(2) }, "llm_model_thinking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := valid()
			tt.mutate(&req)

			_, err := f.api.AI.TestLLMConnectivity(context.Background(), req)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
			assert.Zero(t, f.calls.Load())
		})
	}
}

func TestTestLLMConnectivity_SendsSnakeCase(t *testing.T) {
	f := newFixture(t)
	var body map[string]any
	f.router.POST("/api/ai/llm/test-connectivity", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		body = decodeBody(t, r)
		writeJSON(w, `{"ok":true,"latency_ms":120}`)
	})

	raw, err := f.api.AI.TestLLMConnectivity(context.Background(), model.ConnectivityRequest{
		LLMProvider:         model.ProviderOpenAICompatible,
		LLMAPIKey:           " sk-1 ",
		LLMAPIURL:           "https://llm.example.com/v1",
		LLMModelName:        "qwen",
		LLMModelType:        intPtr(1),
		LLMModelTemperature: floatPtr(0.3),
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true,"latency_ms":120}`, string(raw))
	assert.Equal(t, "sk-1", body["llm_api_key"])
	assert.Equal(t, "https://llm.example.com/v1", body["llm_api_url"])
	assert.Equal(t, 0.3, body["llm_model_temperature"])
}

func TestTodayCompletedTasks(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantLen  int
	}{
		{"bare list", `[{"task":{"taskId":"t1"},"child_tasks":[]}]`, 1},
		{"nested under data", `{"data":[{"task":{"taskId":"t1"}},{"task":{"taskId":"t2"}}]}`, 2},
		{"unexpected shape", `{"message":"nothing"}`, 0},
		{"wrapped in an envelope", ok(`[{"task":{"taskId":"t1"}}]`), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var target string
			f.router.GET("/api/ai/daily-report/today-completed-tasks", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				target = r.URL.Query().Get("target_date")
				writeJSON(w, tt.response)
			})

			tasks, err := f.api.Reports.TodayCompletedTasks(context.Background(), "2024-03-10T08:00:00")

			require.NoError(t, err)
			assert.NotNil(t, tasks)
			assert.Len(t, tasks, tt.wantLen)
			assert.Equal(t, "2024-03-10", target)
		})
	}
}

func TestGenerateDailyReport(t *testing.T) {
	f := newFixture(t)
	var body map[string]any
	f.router.POST("/api/ai/daily-report/generate", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		body = decodeBody(t, r)
		writeJSON(w, `{"today_finish_tasks_report":"done","tomorrow_todo_tasks_report":"more","think_report":"ok"}`)
	})
	ctx := context.Background()

	_, err := f.api.Reports.GenerateDailyReport(ctx, model.GenerateReportRequest{})
	assert.True(t, apperrors.IsValidation(err))

	report, err := f.api.Reports.GenerateDailyReport(ctx, model.GenerateReportRequest{
		LLMConfigID:         " cfg1 ",
		TodayFinishTaskList: []map[string]string{{"taskId": "t1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "done", report.TodayFinishTasksReport)
	assert.Equal(t, "ok", report.ThinkReport)
	assert.Equal(t, "cfg1", body["llm_config_id"])
}

func TestGenerateDailyReport_UsesLongTimeout(t *testing.T) {
	f := newFixture(t)
	log := logger.Discard()
	f.api = New(f.client, NewValidator(log), log, WithLongTimeout(20*time.Millisecond))
	f.router.POST("/api/ai/daily-report/generate", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	_, err := f.api.Reports.GenerateDailyReport(context.Background(), model.GenerateReportRequest{LLMConfigID: "cfg1"})

	require.Error(t, err)
	assert.Equal(t, apperrors.KindTransport, apperrors.KindOf(err))
}

func TestToolConfig_CreateThenUpdate(t *testing.T) {
	f := newFixture(t)
	var methods []string
	handler := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		methods = append(methods, r.Method)
		writeJSON(w, ok(`{"llm_config_id":"cfg1"}`))
	}
	f.router.POST("/api/ai/daily-report/tool-config", handler)
	f.router.PUT("/api/ai/daily-report/tool-config", handler)
	ctx := context.Background()

	_, err := f.api.Reports.CreateToolConfig(ctx, "cfg1")
	require.NoError(t, err)
	raw, err := f.api.Reports.UpdateToolConfig(ctx, "cfg1")
	require.NoError(t, err)

	assert.Equal(t, []string{http.MethodPost, http.MethodPut}, methods)
	var cfg map[string]string
	require.NoError(t, json.Unmarshal(raw, &cfg))
	assert.Equal(t, "cfg1", cfg["llm_config_id"])

	_, err = f.api.Reports.UpdateToolConfig(ctx, "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestDingTalkRobots(t *testing.T) {
	f := newFixture(t)
	var body map[string]any
	f.router.POST("/api/dingtalk-robot-configs", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		body = decodeBody(t, r)
		writeJSON(w, ok(`{"robotId":"r1","robotName":"Daily"}`))
	})
	ctx := context.Background()

	_, err := f.api.DingTalk.CreateRobot(ctx, model.DingTalkRobot{RobotName: "Daily", DingtalkRobotToken: "tok"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dingtalkRobotSecret")
	assert.Zero(t, f.calls.Load())

	robot, err := f.api.DingTalk.CreateRobot(ctx, model.DingTalkRobot{
		RobotID:              "ignored",
		RobotName:            " Daily ",
		DingtalkRobotToken:   "tok",
		DingtalkRobotSecret:  "sec",
		DingtalkRobotKeyword: "report",
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", robot.RobotID)
	assert.Equal(t, "Daily", body["robotName"])
	_, hasID := body["robotId"]
	assert.False(t, hasID)
}

func TestLLMConfigs(t *testing.T) {
	f := newFixture(t)
	f.router.GET("/api/llm-configs", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, ok(`[{"llmConfigId":"c1","llmProvider":"deepseek","llmApiUrl":"","llmModelName":"chat","llmModelTemperature":0.7}]`))
	})
	f.router.DELETE("/api/llm-configs/:id", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, `{"code":400,"message":"config in use"}`)
	})
	ctx := context.Background()

	configs, err := f.api.LLMConfigs.ListLLMConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 0.7, *configs[0].LLMModelTemperature)

	err = f.api.LLMConfigs.DeleteLLMConfig(ctx, "c1")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindBusiness, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "config in use")

	_, err = f.api.LLMConfigs.CreateLLMConfig(ctx, model.CreateLLMConfigRequest{LLMProvider: "deepseek"})
	assert.True(t, apperrors.IsValidation(err))
}
