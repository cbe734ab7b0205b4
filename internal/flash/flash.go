// Package flash stores one-time notices and the pending login redirect in
// a cookie session. A notice is attached to the next rendered response and
// cleared after one read.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "wanderlust_session"

	NoticeSuccess = "success"
	NoticeError   = "error"

	redirectKey = "redirect_url"
)

func init() {
	gob.Register([]string{})
}

type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: store}
}

func (s *Store) session(c *gin.Context) *sessions.Session {
	// Get never fails fatally; a broken cookie yields a fresh session.
	sess, _ := s.cookies.Get(c.Request, SessionName)
	return sess
}

// Add appends a notice under the given kind ("success" or "error").
func (s *Store) Add(c *gin.Context, kind, message string) {
	sess := s.session(c)
	existing, _ := sess.Values[kind].([]string)
	sess.Values[kind] = append(existing, message)
	_ = sess.Save(c.Request, c.Writer)
}

// Pop returns all pending notices and clears them.
func (s *Store) Pop(c *gin.Context) map[string][]string {
	sess := s.session(c)
	out := map[string][]string{}
	for _, kind := range []string{NoticeSuccess, NoticeError} {
		if msgs, ok := sess.Values[kind].([]string); ok && len(msgs) > 0 {
			out[kind] = msgs
		}
		delete(sess.Values, kind)
	}
	if len(out) == 0 {
		return nil
	}
	_ = sess.Save(c.Request, c.Writer)
	return out
}

// SaveRedirectURL records the originally requested path so login can send
// the user back to it.
func (s *Store) SaveRedirectURL(c *gin.Context, url string) {
	sess := s.session(c)
	sess.Values[redirectKey] = url
	_ = sess.Save(c.Request, c.Writer)
}

// PeekRedirectURL exposes the pending redirect path without clearing it.
func (s *Store) PeekRedirectURL(c *gin.Context) string {
	sess := s.session(c)
	url, _ := sess.Values[redirectKey].(string)
	return url
}

// PopRedirectURL returns the pending redirect path and clears it.
func (s *Store) PopRedirectURL(c *gin.Context) string {
	sess := s.session(c)
	url, _ := sess.Values[redirectKey].(string)
	if url != "" {
		delete(sess.Values, redirectKey)
		_ = sess.Save(c.Request, c.Writer)
	}
	return url
}
