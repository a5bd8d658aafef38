package controller

import (
	"net/http"
	"time"
)

const preferenceCookieMaxAge = 365 * 24 * time.Hour

// cookieStore persists preferences as plain cookies. Values set during the
// request are visible to later reads of the same request.
type cookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	written map[string]string
}

func newCookieStore(w http.ResponseWriter, r *http.Request) *cookieStore {
	return &cookieStore{w: w, r: r, written: map[string]string{}}
}

func (s *cookieStore) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		return v, true
	}
	c, err := s.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *cookieStore) Set(key, value string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(preferenceCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.written[key] = value
	return nil
}
