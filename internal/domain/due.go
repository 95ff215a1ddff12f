package domain

// DueState classifies a note's due date against today's calendar day.
type DueState string

const (
	DueNone     DueState = "none"
	DueOverdue  DueState = "overdue"
	DueToday    DueState = "today"
	DueUpcoming DueState = "upcoming"
)

// ClassifyDue compares by calendar day only; time of day never matters.
func ClassifyDue(due *Date, today Date) DueState {
	if due == nil {
		return DueNone
	}
	switch due.Compare(today) {
	case -1:
		return DueOverdue
	case 0:
		return DueToday
	default:
		return DueUpcoming
	}
}
