package views

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
)

// Label turns an enum value like IN_PROGRESS into "In Progress".
// A Caser is stateful, so each call gets its own.
func Label(enum string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(enum, "_", " ")))
}

func StatusLabel(s goal.Status) string { return Label(string(s)) }

func ChoiceLabel(c feedback.Choice) string { return Label(string(c)) }

// FormatDate renders an ISO date (or timestamp) as "Jan 2, 2006".
func FormatDate(s string) string {
	if s == "" {
		return "No due date"
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

func Percent(v int) string { return fmt.Sprintf("%d%%", v) }

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
