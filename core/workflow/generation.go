package workflow

import (
	"context"
	"sync"
)

// Generation hands out load tokens for one view. Starting a load supersedes
// (and cancels) the previous one; a response carrying a superseded token must be discarded.
type Generation struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Token identifies one load.
type Token uint64

// Next starts a new load derived from ctx and cancels the one in flight.
// The returned release func must be called when the load is done.
func (g *Generation) Next(ctx context.Context) (context.Context, Token, func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.seq++
	loadCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	tok := Token(g.seq)

	release := func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		cancel()
		if Token(g.seq) == tok {
			g.cancel = nil
		}
	}
	return loadCtx, tok, release
}

// Current reports whether tok is the latest load.
func (g *Generation) Current(tok Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Token(g.seq) == tok
}

// Apply calls fn under the generation lock only if tok is still current.
// It returns false when the response was stale and dropped.
func (g *Generation) Apply(tok Token, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if Token(g.seq) != tok {
		return false
	}
	fn()
	return true
}
