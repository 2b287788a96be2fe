package session

import (
	"net/http"

	gorilla "github.com/gorilla/sessions"
)

// A Stub is an in-memory SessionStorer for tests,
// always returning the same Session.
type Stub struct {
	s *gorilla.Session
}

// NewStub constructs a *Stub. When userID is non-zero,
// the Session already has that user registered.
func NewStub(userID uint) *Stub {
	s := new(Stub)
	s.s = gorilla.NewSession(s, "stub")
	if userID != 0 {
		s.s.Values[userSessionKey] = userID
	}

	return s
}

func (s *Stub) GetSession(r *http.Request) (Session, error) { return Session{s.s}, nil }

func (s *Stub) Get(r *http.Request, name string) (*gorilla.Session, error) { return s.s, nil }
func (s *Stub) New(r *http.Request, name string) (*gorilla.Session, error) { return s.s, nil }
func (s *Stub) Save(r *http.Request, w http.ResponseWriter, sess *gorilla.Session) error {
	return nil
}
