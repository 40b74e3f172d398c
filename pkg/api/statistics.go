package api

import (
	"context"
	"encoding/json"
	"net/url"
	"slices"
	"strconv"

	"ducktodo/pkg/model"
	"ducktodo/pkg/validation"
)

const MaxTrendDays = 60

// StatisticsService reads the dashboard figures. Responses are returned
// undecoded because their shape differs per chart.
type StatisticsService interface {
	MyOverview(ctx context.Context, which model.Overview) (json.RawMessage, error)
	MyLoadTrend(ctx context.Context, days int) (json.RawMessage, error)
	MyTaskTrend(ctx context.Context, r model.DateRange) (json.RawMessage, error)
	MyCompletionTrend(ctx context.Context, r model.DateRange) (json.RawMessage, error)
	MyActivityTrend(ctx context.Context, r model.DateRange) (json.RawMessage, error)
	MyPriorityDistribution(ctx context.Context, scope string) (json.RawMessage, error)
	MyStatusDistribution(ctx context.Context, scope string) (json.RawMessage, error)
	MyExpirationForecast(ctx context.Context, buckets, scope string) (json.RawMessage, error)
	MyOverdue(ctx context.Context, from, to string) (json.RawMessage, error)
	MyMTTR(ctx context.Context, from, to string) (json.RawMessage, error)

	TeamOverview(ctx context.Context, teamID string) (json.RawMessage, error)
	TeamDistribution(ctx context.Context, teamID, by string) (json.RawMessage, error)
	TeamWorkload(ctx context.Context, teamID, scope string) (json.RawMessage, error)
	TeamBurndown(ctx context.Context, teamID, from, to string) (json.RawMessage, error)
	TeamOverdue(ctx context.Context, teamID, from, to string) (json.RawMessage, error)
	TeamActivityTrend(ctx context.Context, teamID, rng string) (json.RawMessage, error)
	TeamGraphSummary(ctx context.Context, teamID string) (json.RawMessage, error)
}

type statisticsService struct {
	deps
}

func newStatisticsService(d deps) StatisticsService {
	return &statisticsService{deps: d}
}

func (s *statisticsService) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.client.Get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (s *statisticsService) MyOverview(ctx context.Context, which model.Overview) (json.RawMessage, error) {
	if !slices.Contains(model.Overviews(), which) {
		return nil, invalid("overview", "unknown overview %q", which)
	}
	return s.get(ctx, "/stats/me/overview/"+string(which), nil)
}

func (s *statisticsService) MyLoadTrend(ctx context.Context, days int) (json.RawMessage, error) {
	if days > MaxTrendDays {
		return nil, invalid("days", "days must be at most %d, got %d", MaxTrendDays, days)
	}
	query := url.Values{}
	if days > 0 {
		query.Set("days", strconv.Itoa(days))
	}
	return s.get(ctx, "/stats/me/trend/load", query)
}

func (s *statisticsService) MyTaskTrend(ctx context.Context, r model.DateRange) (json.RawMessage, error) {
	return s.trend(ctx, "/stats/me/trend/tasks", r)
}

func (s *statisticsService) MyCompletionTrend(ctx context.Context, r model.DateRange) (json.RawMessage, error) {
	return s.trend(ctx, "/stats/me/trend/completion", r)
}

func (s *statisticsService) MyActivityTrend(ctx context.Context, r model.DateRange) (json.RawMessage, error) {
	return s.trend(ctx, "/stats/me/trend/activity", r)
}

func (s *statisticsService) trend(ctx context.Context, path string, r model.DateRange) (json.RawMessage, error) {
	query := url.Values{}
	from, fromOK := validation.NormalizeLocalDate(r.From)
	to, toOK := validation.NormalizeLocalDate(r.To)
	if fromOK && toOK {
		if validation.CompareDateStrings(from, to) > 0 {
			return nil, invalid("from", "from must not be after to")
		}
		query.Set("from", from)
		query.Set("to", to)
	} else {
		setIfNotBlank(query, "range", r.Range)
	}
	return s.get(ctx, path, query)
}

func (s *statisticsService) MyPriorityDistribution(ctx context.Context, scope string) (json.RawMessage, error) {
	query := url.Values{}
	setIfNotBlank(query, "scope", scope)
	return s.get(ctx, "/stats/me/distribution/priority", query)
}

func (s *statisticsService) MyStatusDistribution(ctx context.Context, scope string) (json.RawMessage, error) {
	query := url.Values{}
	setIfNotBlank(query, "scope", scope)
	return s.get(ctx, "/stats/me/distribution/status", query)
}

func (s *statisticsService) MyExpirationForecast(ctx context.Context, buckets, scope string) (json.RawMessage, error) {
	query := url.Values{}
	setIfNotBlank(query, "buckets", buckets)
	setIfNotBlank(query, "scope", scope)
	return s.get(ctx, "/stats/me/expiration/forecast", query)
}

func (s *statisticsService) MyOverdue(ctx context.Context, from, to string) (json.RawMessage, error) {
	query, err := window(from, to)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "/stats/me/overdue", query)
}

func (s *statisticsService) MyMTTR(ctx context.Context, from, to string) (json.RawMessage, error) {
	query, err := window(from, to)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, "/stats/me/mttr", query)
}

func (s *statisticsService) TeamOverview(ctx context.Context, teamID string) (json.RawMessage, error) {
	return s.team(ctx, teamID, "overview", nil)
}

func (s *statisticsService) TeamDistribution(ctx context.Context, teamID, by string) (json.RawMessage, error) {
	query := url.Values{}
	setIfNotBlank(query, "by", by)
	return s.team(ctx, teamID, "distribution", query)
}

func (s *statisticsService) TeamWorkload(ctx context.Context, teamID, scope string) (json.RawMessage, error) {
	query := url.Values{}
	setIfNotBlank(query, "scope", scope)
	return s.team(ctx, teamID, "workload", query)
}

func (s *statisticsService) TeamBurndown(ctx context.Context, teamID, from, to string) (json.RawMessage, error) {
	query, err := window(from, to)
	if err != nil {
		return nil, err
	}
	return s.team(ctx, teamID, "burndown", query)
}

func (s *statisticsService) TeamOverdue(ctx context.Context, teamID, from, to string) (json.RawMessage, error) {
	query, err := window(from, to)
	if err != nil {
		return nil, err
	}
	return s.team(ctx, teamID, "overdue", query)
}

func (s *statisticsService) TeamActivityTrend(ctx context.Context, teamID, rng string) (json.RawMessage, error) {
	query := url.Values{}
	setIfNotBlank(query, "range", rng)
	return s.team(ctx, teamID, "trend/activity", query)
}

func (s *statisticsService) TeamGraphSummary(ctx context.Context, teamID string) (json.RawMessage, error) {
	return s.team(ctx, teamID, "graph/summary", nil)
}

func (s *statisticsService) team(ctx context.Context, teamID, chart string, query url.Values) (json.RawMessage, error) {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return nil, err
	}
	return s.get(ctx, pathf("/stats/teams/%s/", id)+chart, query)
}

// window keeps the bounds that parse as dates and rejects from > to.
func window(from, to string) (url.Values, error) {
	query := url.Values{}
	f, fromOK := validation.NormalizeLocalDate(from)
	t, toOK := validation.NormalizeLocalDate(to)
	if fromOK && toOK && validation.CompareDateStrings(f, t) > 0 {
		return nil, invalid("from", "from must not be after to")
	}
	if fromOK {
		query.Set("from", f)
	}
	if toOK {
		query.Set("to", t)
	}
	return query, nil
}
