package report

import (
	"fmt"
	"math"

	"github.com/trezcool/mentorhub/core"
)

// NoReportLabel marks a student whose current report could not be fetched.
const NoReportLabel = "No Report"

type (
	// WeeklyReport is a read-only historical snapshot.
	WeeklyReport struct {
		WeekID               string  `json:"weekId"`
		StartDate            string  `json:"startDate"`
		EndDate              string  `json:"endDate"`
		CompletedCount       int     `json:"completedCount"`
		TotalCount           int     `json:"totalCount"`
		CompletionPercentage float64 `json:"completionPercentage"`
	}

	// Current is the in-progress week as returned by the current report endpoint.
	Current struct {
		WeekStartDate        string  `json:"weekStartDate"`
		WeekEndDate          string  `json:"weekEndDate"`
		CompletedCount       int     `json:"completedCount"`
		TotalCount           int     `json:"totalCount"`
		CompletionPercentage float64 `json:"completionPercentage"`
	}

	// StudentProgress pairs a class member with their current week, or the fallback row.
	StudentProgress struct {
		StudentID      int64
		Name           string
		Email          string
		Week           string
		Progress       int
		CompletedCount int
		TotalCount     int
		Missing        bool
	}

	// Summary aggregates a report history.
	Summary struct {
		Weeks          int
		TotalTasks     int
		TotalCompleted int
		AvgCompletion  int
		BestWeek       string
	}
)

func (c Current) WeekLabel() string {
	if c.WeekStartDate != "" && c.WeekEndDate != "" {
		return fmt.Sprintf("%s to %s", c.WeekStartDate, c.WeekEndDate)
	}
	return "Current Week"
}

// Ratio renders completed/total.
func (p StudentProgress) Ratio() string {
	return fmt.Sprintf("%d/%d", p.CompletedCount, p.TotalCount)
}

// NewStudentProgress builds a row from a fetched report; a nil report yields the fallback row.
func NewStudentProgress(id int64, name, email string, cur *Current) StudentProgress {
	p := StudentProgress{StudentID: id, Name: name, Email: email}
	if cur == nil {
		p.Week = NoReportLabel
		p.Missing = true
		return p
	}
	p.Week = cur.WeekLabel()
	p.Progress = int(math.Round(cur.CompletionPercentage))
	p.CompletedCount = cur.CompletedCount
	p.TotalCount = cur.TotalCount
	return p
}

func Summarize(weeks []WeeklyReport) Summary {
	sum := Summary{Weeks: len(weeks)}
	if len(weeks) == 0 {
		return sum
	}
	var pct, best float64 = 0, -1
	for _, w := range weeks {
		sum.TotalTasks += w.TotalCount
		sum.TotalCompleted += w.CompletedCount
		pct += w.CompletionPercentage
		if w.CompletionPercentage > best {
			best = w.CompletionPercentage
			sum.BestWeek = w.WeekID
		}
	}
	sum.AvgCompletion = int(math.Round(pct / float64(len(weeks))))
	return sum
}

// Search keeps the rows whose student name or email contains query, ignoring case.
func Search(rows []StudentProgress, query string) []StudentProgress {
	query = core.CleanString(query)
	if query == "" {
		return rows
	}
	out := make([]StudentProgress, 0, len(rows))
	for _, r := range rows {
		if core.ContainsFold(r.Name, query) || core.ContainsFold(r.Email, query) {
			out = append(out, r)
		}
	}
	return out
}
