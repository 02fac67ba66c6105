package views

import (
	"fmt"
	"strings"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
	"github.com/trezcool/mentorhub/core/roster"
)

// Feedback history placeholders
const (
	NoFeedbackText          = "No feedback history available yet."
	FeedbackLoadFailedText  = "Failed to load feedback history."
	FeedbackLoadErrorText   = "Error loading feedback history."
	ReportsLoadFailedText   = "Failed to load student data."
	StudentsLoadFailedText  = "Failed to load students."
	DashboardLoadFailedText = "Failed to load goals."
)

func Students(members []roster.Member) Table {
	t := Table{Columns: []string{"ID", "Name", "Email", "Class"}, Empty: "No students found."}
	for _, m := range members {
		t.Rows = append(t.Rows, []string{id(m.Key()), orNA(m.Name), m.Email, orNA(m.ClassName)})
	}
	return t
}

func ClassReports(rows []report.StudentProgress) Table {
	t := Table{Columns: []string{"ID", "Name", "Week", "Progress", "Tasks"}, Empty: "No students found for this class."}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{id(r.StudentID), r.Name, r.Week, Percent(r.Progress), r.Ratio()})
	}
	return t
}

// ClassReportsMatching renders the rows found by a report search, with a no-results message.
func ClassReportsMatching(rows []report.StudentProgress, query string) Table {
	t := ClassReports(rows)
	if query = core.CleanString(query); query != "" {
		t.Empty = fmt.Sprintf("No reports match your search for %q. Try a different search term.", query)
	}
	return t
}

// StudentGoals is a student's dashboard as a mentor sees it, optionally narrowed to one status.
func StudentGoals(items []goal.Goal, status goal.Status) Table {
	t := Goals(items)
	t.Empty = "This student has no goals yet."
	if status != "" {
		t.Empty = fmt.Sprintf("No %s goals.", strings.ToLower(StatusLabel(status)))
	}
	return t
}

func FeedbackHistory(items []feedback.Feedback) Table {
	t := Table{Columns: []string{"Type", "Feedback", "Date"}, Empty: NoFeedbackText}
	for _, fb := range items {
		t.Rows = append(t.Rows, []string{ChoiceLabel(fb.FeedbackChoice), oneLine(fb.FeedbackText), fb.CreatedAt.Format("Jan 2, 2006")})
	}
	return t
}

// FeedbackFailure picks the placeholder for a failed history fetch:
// a backend answer (e.g. 404) fails to load, a missing answer is a loading error.
func FeedbackFailure(err error) string {
	if core.IsNetworkError(err) {
		return FeedbackLoadErrorText
	}
	return FeedbackLoadFailedText
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
