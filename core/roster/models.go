package roster

import (
	"sort"
	"strings"

	"github.com/trezcool/mentorhub/core"
)

// Class labels (a.k.a. batches)
const (
	ClassA = "A"
	ClassB = "B"
	ClassC = "C"
)

var (
	AllClasses = []string{ClassA, ClassB, ClassC}

	classIDs = map[string]int{
		ClassA: 1,
		ClassB: 2,
		ClassC: 3,
	}
)

// ClassID maps a display class label to the backend class id.
func ClassID(label string) (int, bool) {
	id, ok := classIDs[strings.ToUpper(core.CleanString(label))]
	return id, ok
}

func IsClass(label string) bool {
	_, ok := ClassID(label)
	return ok
}

type (
	// Member is one raw row from the backend: one person in one class.
	Member struct {
		UserID    int64  `json:"userId"`
		ID        int64  `json:"id,omitempty"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		ClassName string `json:"className,omitempty"`
	}

	// Summary is a person with all their classes, grouped client-side.
	Summary struct {
		UserID  int64
		Name    string
		Email   string
		Classes []string
	}

	// PendingRegistration is a sign-up waiting for admin approval.
	PendingRegistration struct {
		UserID    int64  `json:"userId"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		ClassName string `json:"className,omitempty"`
	}
)

// Key returns the user id, falling back to `id` which some endpoints send instead.
func (m Member) Key() int64 {
	if m.UserID != 0 {
		return m.UserID
	}
	return m.ID
}

func (s Summary) HasClass(label string) bool {
	for _, cls := range s.Classes {
		if cls == label {
			return true
		}
	}
	return false
}

// AssignableClasses are the known classes the person is not yet in.
func (s Summary) AssignableClasses() []string {
	out := make([]string, 0, len(AllClasses))
	for _, cls := range AllClasses {
		if !s.HasClass(cls) {
			out = append(out, cls)
		}
	}
	return out
}

// Group folds raw rows into one Summary per person, in first-appearance order, with deduplicated sorted classes.
func Group(rows []Member) []Summary {
	idx := make(map[int64]int, len(rows))
	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		key := row.Key()
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, Summary{UserID: key, Name: row.Name, Email: row.Email, Classes: []string{}})
		}
		if row.ClassName != "" && !out[i].HasClass(row.ClassName) {
			out[i].Classes = append(out[i].Classes, row.ClassName)
		}
	}
	for i := range out {
		sort.Strings(out[i].Classes)
	}
	return out
}

// FilterByClass keeps the summaries in class label; an empty label keeps everything.
func FilterByClass(summaries []Summary, label string) []Summary {
	if label == "" {
		return summaries
	}
	out := make([]Summary, 0, len(summaries))
	for _, s := range summaries {
		if s.HasClass(label) {
			out = append(out, s)
		}
	}
	return out
}

// Search matches name or email, case-insensitively; a blank query keeps everything.
func Search(members []Member, query string) []Member {
	query = core.CleanString(query)
	if query == "" {
		return members
	}
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if core.ContainsFold(m.Name, query) || core.ContainsFold(m.Email, query) {
			out = append(out, m)
		}
	}
	return out
}
