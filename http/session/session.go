package session

import (
	"net/http"
	"time"

	gorilla "github.com/gorilla/sessions"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey     = "prestapp-session-gorilla" // used by Service
	userSessionKey = sessionKey + "-user"       // used by Session
	subSessionKey  = sessionKey + "-sub"        // used by Session
	authedAtKey    = sessionKey + "-authed-at"  // used by Session
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The UserSessionable wraps methods for adding, removing, and retrieving
// the authenticated user from a session.
type UserSessionable interface {
	AuthenticatedAt() time.Time
	DeregisterUser(w http.ResponseWriter, r *http.Request) error
	RegisterUser(w http.ResponseWriter, r *http.Request, ID uint, sub string) error
	Subject() string
	UserID() (uint, error)
}

// The UserSession composes session's major interfaces.
type UserSession interface {
	Sessionable
	UserSessionable
}

// A Session lightly wraps a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a Session from the *gorilla.Session.
func NewSession(g *gorilla.Session) Session { return Session{s: g} }

// AuthenticatedAt returns when RegisterUser was called for the session,
// or the zero time.Time.
func (s Session) AuthenticatedAt() time.Time {
	unix, ok := s.s.Values[authedAtKey].(int64)
	if !ok {
		return time.Time{}
	}

	return time.Unix(unix, 0)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// DeregisterUser removes the user from the session.
func (s Session) DeregisterUser(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, userSessionKey)
	delete(s.s.Values, subSessionKey)
	delete(s.s.Values, authedAtKey)
	return s.Save(w, r)
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// RegisterUser stores the user's ID and identity provider subject in the session.
func (s Session) RegisterUser(w http.ResponseWriter, r *http.Request, ID uint, sub string) error {
	s.s.Values[userSessionKey] = ID
	s.s.Values[subSessionKey] = sub
	s.s.Values[authedAtKey] = time.Now().Unix()
	return s.Save(w, r)
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// Subject returns the identity provider's identifier for the user in the session.
func (s Session) Subject() string {
	sub, _ := s.s.Values[subSessionKey].(string)
	return sub
}

// UserID gets the user ID out of the session.
// A user ID should be present in a session if the user is successfully authenticated.
// If no user ID can be found, ErrNoUser returns.
//
// If the value returned from the session is not a uint, ErrNotValid returns and represents a programming error.
func (s Session) UserID() (uint, error) {
	intfVal, ok := s.s.Values[userSessionKey]
	if !ok {
		return 0, ErrNoUser
	}

	val, ok := intfVal.(uint)
	if !ok {
		return 0, ErrNotValid
	}

	return val, nil
}

var _ UserSession = Session{}
