package notifysvc

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/labstack/gommon/color"
	"golang.org/x/term"

	"github.com/trezcool/mentorhub/core/notify"
)

// ConsoleSink prints notifications as coloured lines.
type ConsoleSink struct {
	mu  sync.Mutex
	out io.Writer
	clr *color.Color
}

var _ notify.Sink = (*ConsoleSink)(nil)

// NewConsoleSink writes to out; colours are turned off unless out is a terminal.
func NewConsoleSink(out io.Writer) *ConsoleSink {
	clr := color.New()
	if f, ok := out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		clr.Disable()
	}
	return &ConsoleSink{out: out, clr: clr}
}

func (s *ConsoleSink) Show(n notify.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var label string
	switch n.Kind {
	case notify.KindSuccess:
		label = s.clr.Green("✔ success")
	case notify.KindError:
		label = s.clr.Red("✖ error")
	default:
		label = s.clr.Cyan("ℹ info")
	}
	_, _ = fmt.Fprintf(s.out, "%s  %s\n", label, n.Message)
}
