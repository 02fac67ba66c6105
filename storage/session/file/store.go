// Package filestore keeps the session in a small JSON file, the way the web UI keeps
// `jwtToken` and `currentUser` in local storage.
package filestore

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/session"
)

const fileMode = 0o600

type Store struct {
	path string
	mu   sync.Mutex
}

var _ session.Store = (*Store)(nil)

func NewStore(conf *core.Config) *Store {
	return New(conf.Session.Path)
}

func New(path string) *Store {
	return &Store{path: path}
}

func (st *Store) Path() string { return st.path }

func (st *Store) Load(context.Context) (session.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := ioutil.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, session.ErrNoSession
		}
		return session.Session{}, errors.Wrapf(err, "reading %s", st.path)
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, errors.Wrapf(err, "decoding %s", st.path)
	}
	if sess.IsZero() {
		return session.Session{}, session.ErrNoSession
	}
	return sess, nil
}

// Save writes the session atomically: a temp file in the same directory is renamed over the target.
func (st *Store) Save(_ context.Context, sess session.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	dir := filepath.Dir(st.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := ioutil.TempFile(dir, ".session-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, "writing session")
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.Wrap(err, "chmod session")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "closing session")
	}
	if err := os.Rename(tmpName, st.path); err != nil {
		cleanup()
		return errors.Wrapf(err, "renaming to %s", st.path)
	}
	return nil
}

func (st *Store) Clear(context.Context) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", st.path)
	}
	return nil
}
