package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassID(t *testing.T) {
	tests := []struct {
		label  string
		want   int
		wantOk bool
	}{
		{label: "A", want: 1, wantOk: true},
		{label: "B", want: 2, wantOk: true},
		{label: "c", want: 3, wantOk: true},
		{label: "D"},
		{label: ""},
	}
	for _, tt := range tests {
		got, ok := ClassID(tt.label)
		if got != tt.want || ok != tt.wantOk {
			t.Errorf("ClassID(%q) = (%d, %v), want (%d, %v)", tt.label, got, ok, tt.want, tt.wantOk)
		}
	}
}

func TestGroup(t *testing.T) {
	rows := []Member{
		{UserID: 2, Name: "Ada", Email: "ada@test.cd", ClassName: "B"},
		{UserID: 1, Name: "Bob", Email: "bob@test.cd", ClassName: "A"},
		{UserID: 2, Name: "Ada", Email: "ada@test.cd", ClassName: "A"},
		{UserID: 2, Name: "Ada", Email: "ada@test.cd", ClassName: "B"},
		{UserID: 3, Name: "Cy", Email: "cy@test.cd"},
	}
	got := Group(rows)
	want := []Summary{
		{UserID: 2, Name: "Ada", Email: "ada@test.cd", Classes: []string{"A", "B"}},
		{UserID: 1, Name: "Bob", Email: "bob@test.cd", Classes: []string{"A"}},
		{UserID: 3, Name: "Cy", Email: "cy@test.cd", Classes: []string{}},
	}
	assert.Equal(t, want, got)

	assert.Len(t, FilterByClass(got, "A"), 2)
	assert.Len(t, FilterByClass(got, "C"), 0)
	assert.Len(t, FilterByClass(got, ""), 3)

	assert.Equal(t, []string{"C"}, got[0].AssignableClasses())
	assert.Equal(t, AllClasses, got[2].AssignableClasses())
}

func TestSearch(t *testing.T) {
	members := []Member{
		{UserID: 1, Name: "Ada Lovelace", Email: "ada@test.cd"},
		{UserID: 2, Name: "Bob", Email: "bob@school.cd"},
	}
	assert.Len(t, Search(members, "ADA"), 1)
	assert.Len(t, Search(members, "school"), 1)
	assert.Len(t, Search(members, "  "), 2)
	assert.Len(t, Search(members, "zed"), 0)
}

func TestMember_Key(t *testing.T) {
	assert.Equal(t, int64(5), Member{ID: 5}.Key())
	assert.Equal(t, int64(4), Member{UserID: 4, ID: 5}.Key())
}
