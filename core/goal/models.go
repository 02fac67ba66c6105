package goal

import "math"

// Statuses
const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

var AllStatuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

type Status string

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Goal is a student goal, or a task when MentorName is set.
type Goal struct {
	ID                 int64   `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	DueDate            string  `json:"dueDate,omitempty"`
	Status             Status  `json:"status"`
	ProgressPercentage int     `json:"progressPercentage"`
	MentorName         *string `json:"mentorName,omitempty"`
}

// IsTask reports whether the item was assigned by a mentor.
func (g Goal) IsTask() bool {
	return g.MentorName != nil
}

// StatusForProgress derives the status implied by a progress value.
func StatusForProgress(progress int) Status {
	switch {
	case progress <= 0:
		return StatusPending
	case progress >= 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// SyncFromProgress sets the progress and forces the matching status.
func SyncFromProgress(progress int) (int, Status) {
	progress = clampProgress(progress)
	return progress, StatusForProgress(progress)
}

// SyncFromStatus sets the status and forces the matching progress.
// IN_PROGRESS keeps the current progress.
func SyncFromStatus(status Status, progress int) (Status, int) {
	switch status {
	case StatusCompleted:
		return status, 100
	case StatusPending:
		return status, 0
	default:
		return status, clampProgress(progress)
	}
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// Summary is the student dashboard header.
type Summary struct {
	Total       int
	Completed   int
	InProgress  int
	Pending     int
	Tasks       int
	AvgProgress int
}

func Summarize(items []Goal) Summary {
	var sum Summary
	var progress int
	for _, item := range items {
		sum.Total++
		switch item.Status {
		case StatusCompleted:
			sum.Completed++
		case StatusInProgress:
			sum.InProgress++
		default:
			sum.Pending++
		}
		if item.IsTask() {
			sum.Tasks++
		}
		progress += item.ProgressPercentage
	}
	if sum.Total > 0 {
		sum.AvgProgress = int(math.Round(float64(progress) / float64(sum.Total)))
	}
	return sum
}

// Split separates personal goals from mentor tasks, keeping order.
func Split(items []Goal) (goals, tasks []Goal) {
	for _, item := range items {
		if item.IsTask() {
			tasks = append(tasks, item)
		} else {
			goals = append(goals, item)
		}
	}
	return goals, tasks
}

// FilterByStatus keeps the items in status; an empty status keeps everything.
func FilterByStatus(items []Goal, status Status) []Goal {
	if status == "" {
		return items
	}
	out := make([]Goal, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out
}
