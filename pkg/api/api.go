package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ducktodo/pkg/client"
	apperrors "ducktodo/pkg/errors"
	"ducktodo/pkg/logger"
	"ducktodo/pkg/model"
	"ducktodo/pkg/validation"
)

// API groups the resource services that talk to the gateway. Every call
// normalizes its input, validates it locally and then issues one request.
type API struct {
	Base       BaseService
	Users      UserService
	Tasks      TaskService
	TaskGroups TaskGroupService
	Teams      TeamService
	Stats      StatisticsService
	LLMConfigs LLMConfigService
	AI         AIService
	Reports    DailyReportService
	DingTalk   DingTalkService
}

type Option func(*deps)

// WithLongTimeout sets the timeout used by slow calls such as report
// generation.
func WithLongTimeout(d time.Duration) Option {
	return func(dp *deps) {
		if d > 0 {
			dp.longTimeout = d
		}
	}
}

func New(c *client.Client, v *validation.Validator, log *logger.Logger, opts ...Option) *API {
	if log == nil {
		log = logger.Discard()
	}
	d := deps{client: c, validator: v, log: log, longTimeout: client.LongTimeout}
	for _, opt := range opts {
		opt(&d)
	}
	return &API{
		Base:       newBaseService(d),
		Users:      newUserService(d),
		Tasks:      newTaskService(d),
		TaskGroups: newTaskGroupService(d),
		Teams:      newTeamService(d),
		Stats:      newStatisticsService(d),
		LLMConfigs: newLLMConfigService(d),
		AI:         newAIService(d),
		Reports:    newDailyReportService(d),
		DingTalk:   newDingTalkService(d),
	}
}

// NewValidator returns a validator that knows every enum in pkg/model.
func NewValidator(log *logger.Logger) *validation.Validator {
	v := validation.NewValidator(log)
	for name, enum := range model.Enums() {
		v.RegisterEnum(name, enum)
	}
	return v
}

type deps struct {
	client      *client.Client
	validator   *validation.Validator
	log         *logger.Logger
	longTimeout time.Duration
}

func (d deps) check(req any) error {
	if err := d.validator.Struct(req); err != nil {
		d.log.Debug("Request rejected before sending", "error", err)
		return apperrors.Validation(err)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return apperrors.Validation(validation.Fail(field, format, args...))
}

func requireID(field, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", invalid(field, "%s is required", field)
	}
	return id, nil
}

// pathf escapes every id before substituting it into format.
func pathf(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}

func pageQuery(page, size int) url.Values {
	p, s := validation.NormalizePage(page, size)
	q := url.Values{}
	q.Set("page", strconv.Itoa(p))
	q.Set("size", strconv.Itoa(s))
	return q
}

func setIfNotBlank(q url.Values, key, value string) {
	if v := validation.Trim(value); v != "" {
		q.Set(key, v)
	}
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := validation.Trim(*p)
	return &v
}
