package echoweb

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// requireToken is the route gate: profile-scoped pages redirect to the login
// page when no token cookie is present. The token is not validated here;
// presence alone gates access, and a stale token surfaces later as a backend
// rejection.
func requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(tokenCookie)
		if err != nil || cookie.Value == "" {
			dest := c.Request().URL.RequestURI()
			return c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(dest))
		}
		return next(c)
	}
}
