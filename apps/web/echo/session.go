package echoweb

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	sessionName = "lb_session"
	// tokenCookie mirrors the backend token for the route gate, which only
	// checks presence.
	tokenCookie = "token"

	sessionUserKey = "user"

	// "remember me" keeps the session for 30 days; otherwise it dies with the
	// browser session.
	durableMaxAge = 30 * 24 * 60 * 60
)

// SessionUser is the user info persisted at login and read on every protected
// render.
type SessionUser struct {
	UserNo string
	Name   string
	Email  string
	Token  string
}

// Flash is a one-shot toast message. Kind is "success" or "error".
type Flash struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(SessionUser{})
	gob.Register(Flash{})
}

// sessionManager owns the whole login-state lifecycle: it is the only place
// that reads or writes the session cookie and the token mirror.
type sessionManager struct {
	store *sessions.CookieStore
}

func newSessionManager(secret string) *sessionManager {
	key := []byte(secret)
	if len(key) == 0 {
		// no configured secret: sessions won't survive a restart
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &sessionManager{store: store}
}

func (m *sessionManager) get(c echo.Context) *sessions.Session {
	// an undecodable cookie (rotated secret) falls back to a fresh session
	sess, _ := m.store.Get(c.Request(), sessionName)
	return sess
}

// Login persists the token and user info under exactly one lifetime: durable
// when remember is set, browser-session otherwise.
func (m *sessionManager) Login(c echo.Context, usr SessionUser, remember bool) error {
	sess := m.get(c)
	sess.Values[sessionUserKey] = usr

	opts := *m.store.Options
	if remember {
		opts.MaxAge = durableMaxAge
	} else {
		opts.MaxAge = 0
	}
	sess.Options = &opts

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "saving session")
	}

	cookie := &http.Cookie{
		Name:     tokenCookie,
		Value:    usr.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = durableMaxAge
	}
	c.SetCookie(cookie)
	return nil
}

func (m *sessionManager) Logout(c echo.Context) error {
	sess := m.get(c)
	delete(sess.Values, sessionUserKey)
	opts := *m.store.Options
	opts.MaxAge = -1
	sess.Options = &opts
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "clearing session")
	}

	c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return nil
}

// Current returns the logged-in user, when any.
func (m *sessionManager) Current(c echo.Context) (SessionUser, bool) {
	usr, ok := m.get(c).Values[sessionUserKey].(SessionUser)
	return usr, ok
}

// Flash queues a one-shot toast for the next rendered page.
func (m *sessionManager) Flash(c echo.Context, kind, message string) {
	sess := m.get(c)
	sess.AddFlash(Flash{Kind: kind, Message: message})
	_ = sess.Save(c.Request(), c.Response())
}

// TakeFlashes drains the queued toasts.
func (m *sessionManager) TakeFlashes(c echo.Context) []Flash {
	sess := m.get(c)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	flashes := make([]Flash, 0, len(raw))
	for _, r := range raw {
		if f, ok := r.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
