package notifysvc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/mentorhub/core/notify"
)

func TestConsoleSink_Show(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSink(&buf)

	sink.Show(notify.Notification{Kind: notify.KindSuccess, Message: "Goal added successfully!"})
	sink.Show(notify.Notification{Kind: notify.KindError, Message: "Failed to load"})
	sink.Show(notify.Notification{Kind: notify.KindInfo, Message: "Loading"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.Equal(t, "✔ success  Goal added successfully!", lines[0])
		assert.Equal(t, "✖ error  Failed to load", lines[1])
		assert.Equal(t, "ℹ info  Loading", lines[2])
	}
}

func TestTermPrompter_Ask(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		assumeYes bool
		want      bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "full yes", input: " YES \n", want: true},
		{name: "no", input: "n\n"},
		{name: "empty", input: "\n"},
		{name: "eof", input: ""},
		{name: "assume yes", input: "", assumeYes: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTermPrompter(strings.NewReader(tt.input), &out, tt.assumeYes)
			if got := p.Ask("Are you sure you want to logout?"); got != tt.want {
				t.Errorf("p.Ask() = %v, want %v", got, tt.want)
			}
			assert.Contains(t, out.String(), "Are you sure you want to logout? [y/N]")
		})
	}
}
