package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type homePages struct {
	*pageDeps
}

func registerHomePages(e *echo.Echo, deps *pageDeps) {
	h := homePages{deps}
	e.GET("/", h.home)
	e.GET("/about", h.about)
	e.GET("/contact", h.contact)
}

func (h homePages) home(c echo.Context) error {
	return h.render(c, http.StatusOK, "home.html", "Home", nil)
}

func (h homePages) about(c echo.Context) error {
	return h.render(c, http.StatusOK, "about.html", "About us", nil)
}

func (h homePages) contact(c echo.Context) error {
	return h.render(c, http.StatusOK, "contact.html", "Contact", nil)
}
