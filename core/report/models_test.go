package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStudentProgress(t *testing.T) {
	fallback := NewStudentProgress(4, "Bob", "bob@test.cd", nil)
	assert.Equal(t, "No Report", fallback.Week)
	assert.Equal(t, 0, fallback.Progress)
	assert.Equal(t, "0/0", fallback.Ratio())
	assert.True(t, fallback.Missing)

	cur := &Current{WeekStartDate: "2024-05-06", WeekEndDate: "2024-05-12", CompletedCount: 2, TotalCount: 3, CompletionPercentage: 66.7}
	row := NewStudentProgress(4, "Bob", "bob@test.cd", cur)
	assert.Equal(t, "2024-05-06 to 2024-05-12", row.Week)
	assert.Equal(t, 67, row.Progress)
	assert.Equal(t, "2/3", row.Ratio())

	assert.Equal(t, "Current Week", Current{}.WeekLabel())
}

func TestSummarize(t *testing.T) {
	weeks := []WeeklyReport{
		{WeekID: "W1", CompletedCount: 1, TotalCount: 4, CompletionPercentage: 25},
		{WeekID: "W2", CompletedCount: 3, TotalCount: 4, CompletionPercentage: 75},
		{WeekID: "W3", CompletedCount: 2, TotalCount: 4, CompletionPercentage: 50},
	}
	assert.Equal(t, Summary{Weeks: 3, TotalTasks: 12, TotalCompleted: 6, AvgCompletion: 50, BestWeek: "W2"}, Summarize(weeks))
	assert.Equal(t, Summary{}, Summarize(nil))
}
