package inmem

import (
	"context"
	"sync"

	"github.com/trezcool/mentorhub/core/session"
)

type Store struct {
	mu   sync.RWMutex
	sess *session.Session
}

var _ session.Store = (*Store)(nil)

func NewStore(initial ...session.Session) *Store {
	st := new(Store)
	if len(initial) > 0 {
		sess := initial[0]
		st.sess = &sess
	}
	return st
}

func (st *Store) Load(context.Context) (session.Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.sess == nil {
		return session.Session{}, session.ErrNoSession
	}
	return *st.sess, nil
}

func (st *Store) Save(_ context.Context, sess session.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sess = &sess
	return nil
}

func (st *Store) Clear(context.Context) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sess = nil
	return nil
}
