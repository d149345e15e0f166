package auth

import (
	"net/http"
	"strconv"
	"time"
)

// Cookie names for the session pair.
const (
	CookieSessionID = "sid"
	CookieToken     = "stok"
)

// SessionFromRequest parses the session cookie pair. Missing or
// non-integer cookies yield NoSession so resolution can short-circuit
// without a store round trip.
func SessionFromRequest(r *http.Request) (sessionID, token int64) {
	return cookieInt(r, CookieSessionID), cookieInt(r, CookieToken)
}

func cookieInt(r *http.Request, name string) int64 {
	cookie, err := r.Cookie(name)
	if err != nil {
		return NoSession
	}
	value, err := strconv.ParseInt(cookie.Value, 10, 64)
	if err != nil {
		return NoSession
	}
	return value
}

// LoginCookies builds the Set-Cookie directives issued on login. Both
// cookies expire one TTL from now on the client; the server keeps no
// expiry of its own.
func (m *SessionManager) LoginCookies(sess Session, now time.Time) []*http.Cookie {
	expires := now.Add(m.cookieTTL)
	return []*http.Cookie{
		m.cookie(CookieSessionID, strconv.FormatInt(sess.ID, 10), expires),
		m.cookie(CookieToken, strconv.FormatInt(sess.Token, 10), expires),
	}
}

// LogoutCookies builds the Set-Cookie directives issued on logout.
// Expiring at the Unix epoch forces immediate client-side removal.
func (m *SessionManager) LogoutCookies() []*http.Cookie {
	epoch := time.Unix(0, 0).UTC()
	return []*http.Cookie{
		m.cookie(CookieSessionID, "", epoch),
		m.cookie(CookieToken, "", epoch),
	}
}

func (m *SessionManager) cookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		Expires:  expires,
	}
}
