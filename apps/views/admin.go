package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/trezcool/mentorhub/core/roster"
)

// RosterRow is a class member with their goal counts ("-" when the goals could not be fetched).
type RosterRow struct {
	Member      roster.Member
	Goals       int
	Completed   int
	GoalsLoaded bool
}

func PendingStudents(regs []roster.PendingRegistration) Table {
	t := Table{Columns: []string{"ID", "Name", "Email", "Class"}, Empty: "No pending student registrations."}
	for _, r := range regs {
		t.Rows = append(t.Rows, []string{id(r.UserID), r.Name, r.Email, orNA(r.ClassName)})
	}
	return t
}

func PendingMentors(regs []roster.PendingRegistration) Table {
	t := Table{Columns: []string{"ID", "Name", "Email"}, Empty: "No pending mentor registrations."}
	for _, r := range regs {
		t.Rows = append(t.Rows, []string{id(r.UserID), r.Name, r.Email})
	}
	return t
}

func Mentors(summaries []roster.Summary) Table {
	t := Table{Columns: []string{"ID", "Name", "Email", "Batches"}, Empty: "No mentors found."}
	for _, s := range summaries {
		batches := "Not assigned"
		if len(s.Classes) > 0 {
			batches = strings.Join(s.Classes, ", ")
		}
		t.Rows = append(t.Rows, []string{id(s.UserID), s.Name, s.Email, batches})
	}
	return t
}

func ClassRoster(rows []RosterRow) Table {
	t := Table{Columns: []string{"ID", "Name", "Email", "Class", "Goals"}, Empty: "No students found."}
	for _, r := range rows {
		goals := "-"
		if r.GoalsLoaded {
			goals = fmt.Sprintf("%d/%d", r.Completed, r.Goals)
		}
		t.Rows = append(t.Rows, []string{
			id(r.Member.Key()), r.Member.Name, r.Member.Email, "Class " + orNA(r.Member.ClassName), goals,
		})
	}
	return t
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
