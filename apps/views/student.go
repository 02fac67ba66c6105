package views

import (
	"fmt"

	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
)

func Goals(items []goal.Goal) Table {
	t := Table{
		Columns: []string{"ID", "Kind", "Title", "Due", "Status", "Progress"},
		Empty:   `No goals or tasks yet. Run "goal add" to get started!`,
	}
	for _, g := range items {
		kind := "Goal"
		if g.IsTask() {
			kind = "Task by " + *g.MentorName
		}
		t.Rows = append(t.Rows, []string{
			id(g.ID), kind, g.Title, FormatDate(g.DueDate), StatusLabel(g.Status), Percent(g.ProgressPercentage),
		})
	}
	return t
}

func GoalSummary(sum goal.Summary) Table {
	return Table{
		Columns: []string{"Items Completed", "In Progress", "Pending", "Mentor Tasks", "Average Progress"},
		Rows: [][]string{{
			fmt.Sprintf("%d/%d", sum.Completed, sum.Total),
			fmt.Sprint(sum.InProgress),
			fmt.Sprint(sum.Pending),
			fmt.Sprint(sum.Tasks),
			Percent(sum.AvgProgress),
		}},
	}
}

func StudentFeedback(items []feedback.Feedback) Table {
	t := Table{Columns: []string{"Mentor", "Type", "Feedback", "Date"}, Empty: "No feedback received yet."}
	for _, fb := range items {
		mentor := fb.MentorName
		if mentor == "" {
			mentor = "Mentor"
		}
		t.Rows = append(t.Rows, []string{mentor, ChoiceLabel(fb.FeedbackChoice), oneLine(fb.FeedbackText), fb.CreatedAt.Format("Jan 2, 2006")})
	}
	return t
}

func ReportHistory(weeks []report.WeeklyReport) Table {
	t := Table{Columns: []string{"Week", "Dates", "Tasks", "Completion"}, Empty: "No report data available."}
	for _, w := range weeks {
		t.Rows = append(t.Rows, []string{
			w.WeekID,
			FormatDate(w.StartDate) + " - " + FormatDate(w.EndDate),
			fmt.Sprintf("%d/%d", w.CompletedCount, w.TotalCount),
			fmt.Sprintf("%.0f%%", w.CompletionPercentage),
		})
	}
	return t
}

func ReportSummary(sum report.Summary) Table {
	best := sum.BestWeek
	if best == "" {
		best = "-"
	}
	return Table{
		Columns: []string{"Weeks", "Total Tasks", "Completed", "Average Progress", "Best Week"},
		Rows: [][]string{{
			fmt.Sprint(sum.Weeks), fmt.Sprint(sum.TotalTasks), fmt.Sprint(sum.TotalCompleted), Percent(sum.AvgCompletion), best,
		}},
	}
}
