package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"ducktodo/pkg/client"
	"ducktodo/pkg/model"
	"ducktodo/pkg/sanitizer"
	"ducktodo/pkg/validation"
)

type LLMConfigService interface {
	ListLLMConfigs(ctx context.Context) ([]model.LLMConfig, error)
	GetLLMConfig(ctx context.Context, configID string) (*model.LLMConfig, error)
	CreateLLMConfig(ctx context.Context, req model.CreateLLMConfigRequest) (*model.LLMConfig, error)
	UpdateLLMConfig(ctx context.Context, configID string, req model.UpdateLLMConfigRequest) (*model.LLMConfig, error)
	DeleteLLMConfig(ctx context.Context, configID string) error
}

type llmConfigService struct {
	deps
}

func newLLMConfigService(d deps) LLMConfigService {
	return &llmConfigService{deps: d}
}

func (s *llmConfigService) ListLLMConfigs(ctx context.Context) ([]model.LLMConfig, error) {
	var configs []model.LLMConfig
	if err := s.client.Get(ctx, "/llm-configs", nil, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

func (s *llmConfigService) GetLLMConfig(ctx context.Context, configID string) (*model.LLMConfig, error) {
	id, err := requireID("configId", configID)
	if err != nil {
		return nil, err
	}
	var cfg model.LLMConfig
	if err := s.client.Get(ctx, pathf("/llm-configs/%s", id), nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *llmConfigService) CreateLLMConfig(ctx context.Context, req model.CreateLLMConfigRequest) (*model.LLMConfig, error) {
	req.LLMProvider = validation.Trim(req.LLMProvider)
	req.LLMAPIKey = validation.Trim(req.LLMAPIKey)
	req.LLMAPIURL = sanitizer.NormalizeURL(req.LLMAPIURL)
	req.LLMModelName = validation.Trim(req.LLMModelName)
	if err := s.check(req); err != nil {
		return nil, err
	}
	var cfg model.LLMConfig
	if err := s.client.Post(ctx, "/llm-configs", req, &cfg); err != nil {
		return nil, err
	}
	s.log.Info("LLM config created", "config_id", cfg.LLMConfigID, "provider", req.LLMProvider)
	return &cfg, nil
}

func (s *llmConfigService) UpdateLLMConfig(ctx context.Context, configID string, req model.UpdateLLMConfigRequest) (*model.LLMConfig, error) {
	id, err := requireID("configId", configID)
	if err != nil {
		return nil, err
	}
	req.LLMProvider = trimPtr(req.LLMProvider)
	req.LLMAPIKey = trimPtr(req.LLMAPIKey)
	if req.LLMAPIURL != nil {
		u := sanitizer.NormalizeURL(*req.LLMAPIURL)
		req.LLMAPIURL = &u
	}
	req.LLMModelName = trimPtr(req.LLMModelName)
	if err := s.check(req); err != nil {
		return nil, err
	}
	var cfg model.LLMConfig
	if err := s.client.Put(ctx, pathf("/llm-configs/%s", id), req, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *llmConfigService) DeleteLLMConfig(ctx context.Context, configID string) error {
	id, err := requireID("configId", configID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/llm-configs/%s", id), nil, nil)
}

type AIService interface {
	TestLLMConnectivity(ctx context.Context, req model.ConnectivityRequest) (json.RawMessage, error)
}

type aiService struct {
	deps
}

func newAIService(d deps) AIService {
	return &aiService{deps: d}
}

// TestLLMConnectivity asks the AI backend to call the model once. The API URL
// is only required for OpenAI-compatible providers.
func (s *aiService) TestLLMConnectivity(ctx context.Context, req model.ConnectivityRequest) (json.RawMessage, error) {
	req.LLMProvider = validation.Trim(req.LLMProvider)
	req.LLMAPIKey = validation.Trim(req.LLMAPIKey)
	req.LLMAPIURL = sanitizer.NormalizeURL(req.LLMAPIURL)
	req.LLMModelName = validation.Trim(req.LLMModelName)

	if err := s.check(req); err != nil {
		return nil, err
	}
	if req.LLMProvider == model.ProviderOpenAICompatible && req.LLMAPIURL == "" {
		return nil, invalid("llm_api_url", "llm_api_url is required for %s providers", model.ProviderOpenAICompatible)
	}
	if t := req.LLMModelTemperature; t != nil && (*t < 0 || *t > 1) {
		return nil, invalid("llm_model_temperature", "llm_model_temperature must be within [0, 1], got %s",
			strconv.FormatFloat(*t, 'f', -1, 64))
	}
	if th := req.LLMModelThinking; th != nil && !validation.InMapKeys(model.LLMThinkingByCode, *th) {
		return nil, invalid("llm_model_thinking", "llm_model_thinking must be 0 or 1, got %d", *th)
	}

	var result json.RawMessage
	if err := s.client.Post(ctx, "/ai/llm/test-connectivity", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

type DailyReportService interface {
	TodayCompletedTasks(ctx context.Context, targetDate string) ([]model.CompletedTask, error)
	GenerateDailyReport(ctx context.Context, req model.GenerateReportRequest) (*model.DailyReport, error)
	CreateToolConfig(ctx context.Context, llmConfigID string) (json.RawMessage, error)
	UpdateToolConfig(ctx context.Context, llmConfigID string) (json.RawMessage, error)
	GetToolConfig(ctx context.Context) (json.RawMessage, error)
}

type dailyReportService struct {
	deps
}

func newDailyReportService(d deps) DailyReportService {
	return &dailyReportService{deps: d}
}

// TodayCompletedTasks accepts either a bare list or a list nested under
// "data"; anything else yields an empty list. An unparseable target date is
// left out of the query.
func (s *dailyReportService) TodayCompletedTasks(ctx context.Context, targetDate string) ([]model.CompletedTask, error) {
	query := url.Values{}
	if date, ok := validation.NormalizeLocalDate(targetDate); ok {
		query.Set("target_date", date)
	}

	var raw json.RawMessage
	if err := s.client.Get(ctx, "/ai/daily-report/today-completed-tasks", query, &raw); err != nil {
		return nil, err
	}

	var tasks []model.CompletedTask
	if err := json.Unmarshal(raw, &tasks); err == nil && tasks != nil {
		return tasks, nil
	}
	var nested struct {
		Data []model.CompletedTask `json:"data"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Data != nil {
		return nested.Data, nil
	}
	return []model.CompletedTask{}, nil
}

func (s *dailyReportService) GenerateDailyReport(ctx context.Context, req model.GenerateReportRequest) (*model.DailyReport, error) {
	req.LLMConfigID = validation.Trim(req.LLMConfigID)
	if err := s.check(req); err != nil {
		return nil, err
	}
	var report model.DailyReport
	if err := s.client.Post(ctx, "/ai/daily-report/generate", req, &report, client.WithTimeout(s.longTimeout)); err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *dailyReportService) CreateToolConfig(ctx context.Context, llmConfigID string) (json.RawMessage, error) {
	return s.saveToolConfig(ctx, llmConfigID, true)
}

func (s *dailyReportService) UpdateToolConfig(ctx context.Context, llmConfigID string) (json.RawMessage, error) {
	return s.saveToolConfig(ctx, llmConfigID, false)
}

func (s *dailyReportService) saveToolConfig(ctx context.Context, llmConfigID string, create bool) (json.RawMessage, error) {
	req := model.ReportToolConfigRequest{LLMConfigID: validation.Trim(llmConfigID)}
	if err := s.check(req); err != nil {
		return nil, err
	}
	send := s.client.Put
	if create {
		send = s.client.Post
	}
	var result json.RawMessage
	if err := send(ctx, "/ai/daily-report/tool-config", req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetToolConfig returns nil when the caller has no tool config yet.
func (s *dailyReportService) GetToolConfig(ctx context.Context) (json.RawMessage, error) {
	var result json.RawMessage
	if err := s.client.Get(ctx, "/ai/daily-report/tool-config", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

type DingTalkService interface {
	ListRobots(ctx context.Context) ([]model.DingTalkRobot, error)
	GetRobot(ctx context.Context, robotID string) (*model.DingTalkRobot, error)
	CreateRobot(ctx context.Context, req model.DingTalkRobot) (*model.DingTalkRobot, error)
	UpdateRobot(ctx context.Context, robotID string, req model.UpdateDingTalkRobotRequest) (*model.DingTalkRobot, error)
	DeleteRobot(ctx context.Context, robotID string) error
}

type dingTalkService struct {
	deps
}

func newDingTalkService(d deps) DingTalkService {
	return &dingTalkService{deps: d}
}

func (s *dingTalkService) ListRobots(ctx context.Context) ([]model.DingTalkRobot, error) {
	var robots []model.DingTalkRobot
	if err := s.client.Get(ctx, "/dingtalk-robot-configs", nil, &robots); err != nil {
		return nil, err
	}
	return robots, nil
}

func (s *dingTalkService) GetRobot(ctx context.Context, robotID string) (*model.DingTalkRobot, error) {
	id, err := requireID("robotId", robotID)
	if err != nil {
		return nil, err
	}
	var robot model.DingTalkRobot
	if err := s.client.Get(ctx, pathf("/dingtalk-robot-configs/%s", id), nil, &robot); err != nil {
		return nil, err
	}
	return &robot, nil
}

func (s *dingTalkService) CreateRobot(ctx context.Context, req model.DingTalkRobot) (*model.DingTalkRobot, error) {
	req.RobotID = ""
	req.RobotName = validation.Trim(req.RobotName)
	req.DingtalkRobotToken = validation.Trim(req.DingtalkRobotToken)
	req.DingtalkRobotSecret = validation.Trim(req.DingtalkRobotSecret)
	req.DingtalkRobotKeyword = validation.Trim(req.DingtalkRobotKeyword)
	if err := s.check(req); err != nil {
		return nil, err
	}
	var robot model.DingTalkRobot
	if err := s.client.Post(ctx, "/dingtalk-robot-configs", req, &robot); err != nil {
		return nil, err
	}
	return &robot, nil
}

func (s *dingTalkService) UpdateRobot(ctx context.Context, robotID string, req model.UpdateDingTalkRobotRequest) (*model.DingTalkRobot, error) {
	id, err := requireID("robotId", robotID)
	if err != nil {
		return nil, err
	}
	req.RobotName = trimPtr(req.RobotName)
	req.DingtalkRobotToken = trimPtr(req.DingtalkRobotToken)
	req.DingtalkRobotSecret = trimPtr(req.DingtalkRobotSecret)
	req.DingtalkRobotKeyword = trimPtr(req.DingtalkRobotKeyword)

	var robot model.DingTalkRobot
	if err := s.client.Put(ctx, pathf("/dingtalk-robot-configs/%s", id), req, &robot); err != nil {
		return nil, err
	}
	return &robot, nil
}

func (s *dingTalkService) DeleteRobot(ctx context.Context, robotID string) error {
	id, err := requireID("robotId", robotID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/dingtalk-robot-configs/%s", id), nil, nil)
}
