package goal

type GoalStatus string

const (
	StatusNotStarted GoalStatus = "not_started"
	StatusInProgress GoalStatus = "in_progress"
	StatusDone       GoalStatus = "done"
	StatusPaused     GoalStatus = "paused"
)

// AllStatuses is also the column order of the board.
var AllStatuses = []GoalStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusDone,
	StatusPaused,
}

func (s GoalStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
