package notifysvc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/trezcool/mentorhub/core/notify"
)

// TermPrompter asks yes/no questions on a line-oriented terminal.
type TermPrompter struct {
	mu        sync.Mutex
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

var _ notify.Prompter = (*TermPrompter)(nil)

func NewTermPrompter(in io.Reader, out io.Writer, assumeYes bool) *TermPrompter {
	return &TermPrompter{in: bufio.NewReader(in), out: out, assumeYes: assumeYes}
}

// Ask defaults to "no" on empty input, EOF or read errors.
func (p *TermPrompter) Ask(question string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.assumeYes {
		_, _ = fmt.Fprintf(p.out, "%s [y/N]: y\n", question)
		return true
	}
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(p.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
