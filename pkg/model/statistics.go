package model

// DateRange selects a statistics window. From and To win over Range when both
// are valid dates.
type DateRange struct {
	Range string
	From  string
	To    string
}

// Overview names one of the personal overview counters.
type Overview string

const (
	OverviewJoined         Overview = "joined"
	OverviewInProgress     Overview = "in_progress"
	OverviewCompletedWeek  Overview = "completed/week"
	OverviewCompletedMonth Overview = "completed/month"
	OverviewCompletedTotal Overview = "completed/total"
	OverviewOverdue        Overview = "overdue"
)

func Overviews() []Overview {
	return []Overview{
		OverviewJoined,
		OverviewInProgress,
		OverviewCompletedWeek,
		OverviewCompletedMonth,
		OverviewCompletedTotal,
		OverviewOverdue,
	}
}
