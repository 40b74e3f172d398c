package api

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	apperrors "ducktodo/pkg/errors"
	"ducktodo/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyOverview(t *testing.T) {
	f := newFixture(t)
	var chart string
	f.router.GET("/api/stats/me/overview/*which", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		chart = ps.ByName("which")
		writeJSON(w, ok(`{"count":3}`))
	})
	ctx := context.Background()

	raw, err := f.api.Stats.MyOverview(ctx, model.OverviewCompletedWeek)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":3}`, string(raw))
	assert.Equal(t, "/completed/week", chart)

	_, err = f.api.Stats.MyOverview(ctx, model.Overview("yesterday"))
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestMyLoadTrend(t *testing.T) {
	f := newFixture(t)
	var query url.Values
	f.router.GET("/api/stats/me/trend/load", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		query = r.URL.Query()
		writeJSON(w, ok(`[]`))
	})
	ctx := context.Background()

	_, err := f.api.Stats.MyLoadTrend(ctx, MaxTrendDays+1)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, f.calls.Load())

	_, err = f.api.Stats.MyLoadTrend(ctx, MaxTrendDays)
	require.NoError(t, err)
	assert.Equal(t, "60", query.Get("days"))

	_, err = f.api.Stats.MyLoadTrend(ctx, 0)
	require.NoError(t, err)
	assert.False(t, query.Has("days"))
}

func TestMyTaskTrend(t *testing.T) {
	tests := []struct {
		name      string
		in        model.DateRange
		wantQuery url.Values
		wantErr   bool
	}{
		{
			name:      "explicit window wins over range",
			in:        model.DateRange{Range: "7d", From: "2024-03-01", To: "2024-03-10 18:00:00"},
			wantQuery: url.Values{"from": {"2024-03-01"}, "to": {"2024-03-10"}},
		},
		{
			name:      "half a window falls back to range",
			in:        model.DateRange{Range: "30d", From: "2024-03-01"},
			wantQuery: url.Values{"range": {"30d"}},
		},
		{
			name:      "nothing set",
			in:        model.DateRange{},
			wantQuery: url.Values{},
		},
		{
			name:    "reversed window",
			in:      model.DateRange{From: "2024-03-10", To: "2024-03-01"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			var query url.Values
			f.router.GET("/api/stats/me/trend/tasks", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				query = r.URL.Query()
				writeJSON(w, ok(`[]`))
			})

			_, err := f.api.Stats.MyTaskTrend(context.Background(), tt.in)

			if tt.wantErr {
				assert.True(t, apperrors.IsValidation(err))
				assert.Zero(t, f.calls.Load())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
		})
	}
}

func TestMyOverdue_DropsUnparseableBounds(t *testing.T) {
	f := newFixture(t)
	var query url.Values
	f.router.GET("/api/stats/me/overdue", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		query = r.URL.Query()
		writeJSON(w, ok(`{"overdue":1}`))
	})

	_, err := f.api.Stats.MyOverdue(context.Background(), "last week", "2024-03-10")

	require.NoError(t, err)
	assert.Equal(t, url.Values{"to": {"2024-03-10"}}, query)
}

func TestTeamStatistics(t *testing.T) {
	f := newFixture(t)
	var seen []string
	f.router.GET("/api/stats/teams/:teamId/*chart", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		seen = append(seen, ps.ByName("teamId")+ps.ByName("chart")+"?"+r.URL.RawQuery)
		writeJSON(w, ok(`{}`))
	})
	ctx := context.Background()

	_, err := f.api.Stats.TeamOverview(ctx, "team1")
	require.NoError(t, err)
	_, err = f.api.Stats.TeamDistribution(ctx, "team1", "status")
	require.NoError(t, err)
	_, err = f.api.Stats.TeamBurndown(ctx, "team1", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	_, err = f.api.Stats.TeamGraphSummary(ctx, "team1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"team1/overview?",
		"team1/distribution?by=status",
		"team1/burndown?from=2024-03-01&to=2024-03-31",
		"team1/graph/summary?",
	}, seen)

	_, err = f.api.Stats.TeamWorkload(ctx, " ", "")
	assert.True(t, apperrors.IsValidation(err))
}
