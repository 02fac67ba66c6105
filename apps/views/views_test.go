package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
	"github.com/trezcool/mentorhub/core/roster"
)

func TestContainer_RenderIsIdempotent(t *testing.T) {
	members := []roster.Member{
		{UserID: 1, Name: "Ada", Email: "ada@test.cd", ClassName: "A"},
		{UserID: 2, Name: "Bob", Email: "bob@test.cd", ClassName: "B"},
		{UserID: 3, Name: "Cy", Email: "cy@test.cd"},
	}
	c := NewContainer("Students")

	for i := 0; i < 3; i++ {
		c.Render(Students(members))
		assert.Equal(t, len(members), c.RowCount(), "render #%d", i+1)
	}
	first := c.String()
	c.Render(Students(members))
	assert.Equal(t, first, c.String())

	c.Render(Students(members[:1]))
	assert.Equal(t, 1, c.RowCount(), "a smaller snapshot replaces the previous rows")
}

func TestContainer_Fail(t *testing.T) {
	c := NewContainer("Feedback History")
	assert.False(t, c.Rendered())

	c.Render(FeedbackHistory(nil))
	assert.False(t, c.Failed())
	assert.Equal(t, NoFeedbackText, c.Message())

	c.Fail(FeedbackLoadFailedText)
	assert.True(t, c.Failed())
	assert.Equal(t, 0, c.RowCount())
	assert.Equal(t, FeedbackLoadFailedText, c.Message())
	assert.Contains(t, c.String(), "Failed to load feedback history.")
}

func TestFeedbackFailure(t *testing.T) {
	assert.Equal(t, FeedbackLoadFailedText, FeedbackFailure(core.NewAPIError(404, "")))
	assert.Equal(t, FeedbackLoadErrorText, FeedbackFailure(core.NewNetworkError("GET /x", errors.New("refused"))))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "In Progress", StatusLabel(goal.StatusInProgress))
	assert.Equal(t, "Completed", StatusLabel(goal.StatusCompleted))
	assert.Equal(t, "Needs Improvement", ChoiceLabel(feedback.ChoiceNeedsImprovement))
	assert.Equal(t, "May 6, 2024", FormatDate("2024-05-06"))
	assert.Equal(t, "No due date", FormatDate(""))
	assert.Equal(t, "soon", FormatDate("soon"))
}

func TestTables(t *testing.T) {
	mentor := "Ada"
	goals := Goals([]goal.Goal{
		{ID: 1, Title: "Read", Status: goal.StatusInProgress, ProgressPercentage: 40},
		{ID: 2, Title: "Essay", Status: goal.StatusPending, MentorName: &mentor},
	})
	assert.Equal(t, []string{"1", "Goal", "Read", "No due date", "In Progress", "40%"}, goals.Rows[0])
	assert.Equal(t, "Task by Ada", goals.Rows[1][1])

	reports := ClassReports([]report.StudentProgress{report.NewStudentProgress(5, "Cy", "cy@test.cd", nil)})
	assert.Equal(t, []string{"5", "Cy", "No Report", "0%", "0/0"}, reports.Rows[0])

	mentors := Mentors(roster.Group([]roster.Member{{UserID: 2, Name: "Ada", ClassName: "B"}, {UserID: 2, Name: "Ada", ClassName: "A"}, {UserID: 3, Name: "Lin"}}))
	assert.Equal(t, "A, B", mentors.Rows[0][3])
	assert.Equal(t, "Not assigned", mentors.Rows[1][3])

	history := FeedbackHistory([]feedback.Feedback{{FeedbackChoice: feedback.ChoicePositive, FeedbackText: "Great\n  job", CreatedAt: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)}})
	assert.Equal(t, []string{"Positive", "Great job", "May 6, 2024"}, history.Rows[0])

	summary := GoalSummary(goal.Summary{Total: 3, Completed: 1, AvgProgress: 47})
	assert.Equal(t, "1/3", summary.Rows[0][0])

	weeks := ReportHistory([]report.WeeklyReport{{WeekID: "W1", StartDate: "2024-04-29", EndDate: "2024-05-05", CompletedCount: 3, TotalCount: 4, CompletionPercentage: 75}})
	assert.Equal(t, []string{"W1", "Apr 29, 2024 - May 5, 2024", "3/4", "75%"}, weeks.Rows[0])

	classRoster := ClassRoster([]RosterRow{{Member: roster.Member{UserID: 9, Name: "Dee", ClassName: "A"}}})
	assert.Equal(t, []string{"9", "Dee", "", "Class A", "-"}, classRoster.Rows[0])
}

func TestContainer_WriteTo(t *testing.T) {
	c := NewContainer("Pending Mentors")
	c.Render(PendingMentors([]roster.PendingRegistration{{UserID: 21, Name: "Finn", Email: "finn@test.cd"}}))
	lines := strings.Split(strings.TrimSpace(c.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.Equal(t, "== Pending Mentors ==", lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "ID"))
		assert.Contains(t, lines[2], "finn@test.cd")
	}
}
