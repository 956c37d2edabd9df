package handlers

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-contrib/sessions"
	gsessions "github.com/gorilla/sessions"
)

// memoryStore keeps sessions server side and hands out sequential ids, the
// way the redis store does with random ones.
type memoryStore struct {
	mu      sync.Mutex
	data    map[string]map[any]any
	options *gsessions.Options
	next    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		data:    map[string]map[any]any{},
		options: &gsessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true},
	}
}

func (s *memoryStore) Get(r *http.Request, name string) (*gsessions.Session, error) {
	return gsessions.GetRegistry(r).Get(s, name)
}

func (s *memoryStore) New(r *http.Request, name string) (*gsessions.Session, error) {
	session := gsessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	cookie, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if values, ok := s.data[cookie.Value]; ok {
		session.ID = cookie.Value
		session.IsNew = false
		for k, v := range values {
			session.Values[k] = v
		}
	}
	return session, nil
}

func (s *memoryStore) Save(_ *http.Request, w http.ResponseWriter, session *gsessions.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.Options.MaxAge < 0 {
		delete(s.data, session.ID)
		http.SetCookie(w, gsessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		s.next++
		session.ID = fmt.Sprintf("session-%d", s.next)
	}
	values := make(map[any]any, len(session.Values))
	for k, v := range session.Values {
		values[k] = v
	}
	s.data[session.ID] = values
	http.SetCookie(w, gsessions.NewCookie(session.Name(), session.ID, session.Options))
	return nil
}

func (s *memoryStore) Options(options sessions.Options) {
	s.options = options.ToGorillaOptions()
}

func (s *memoryStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[id]
	return ok
}
