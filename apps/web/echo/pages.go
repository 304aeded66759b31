package echoweb

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/catiga/languagebridge/core"
	"github.com/catiga/languagebridge/spwapi"
)

// pageDeps carries everything a page handler needs.
type pageDeps struct {
	api        *spwapi.Client
	sess       *sessionManager
	translator ut.Translator
	logger     core.Logger
}

// pageData is the envelope every template receives. Data holds the
// page-specific payload.
type pageData struct {
	AppName string
	Title   string
	User    *SessionUser
	Flashes []Flash
	Errors  map[string]string
	Data    interface{}
}

// render executes a page template with the session-level fields filled in.
func (d *pageDeps) render(c echo.Context, code int, name, title string, data interface{}) error {
	pd := pageData{
		AppName: core.Conf.AppName,
		Title:   title,
		Data:    data,
	}
	if usr, ok := d.sess.Current(c); ok {
		pd.User = &usr
	}
	pd.Flashes = d.sess.TakeFlashes(c)
	return c.Render(code, name, pd)
}

// renderWithErrors re-renders a form page with per-field error messages.
func (d *pageDeps) renderWithErrors(c echo.Context, name, title string, data interface{}, fldErrs map[string]string) error {
	pd := pageData{
		AppName: core.Conf.AppName,
		Title:   title,
		Errors:  fldErrs,
		Data:    data,
	}
	if usr, ok := d.sess.Current(c); ok {
		pd.User = &usr
	}
	pd.Flashes = d.sess.TakeFlashes(c)
	return c.Render(http.StatusBadRequest, name, pd)
}

// fieldErrors flattens a validation error into a field -> message map, or nil
// when err is not a validation failure.
func (d *pageDeps) fieldErrors(err error) map[string]string {
	switch vErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(vErr))
		for _, fErr := range vErr {
			fldErrs[fErr.Field()] = fErr.Translate(d.translator)
		}
		return fldErrs
	case *core.ValidationError:
		if vErr.Fields != nil {
			fldErrs := make(map[string]string, len(vErr.Fields))
			for _, fErr := range vErr.Fields {
				fldErrs[fErr.Field] = fErr.Error
			}
			return fldErrs
		}
		return map[string]string{"": vErr.Error()}
	}
	return nil
}

// apiFail turns a backend failure into a toast on the current page. Auth
// failures clear the session and bounce to login instead.
func (d *pageDeps) apiFail(c echo.Context, err error, fallback string) error {
	if spwapi.IsAuthFailure(err) {
		_ = d.sess.Logout(c)
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	msg := fallback
	var apiErr *spwapi.Error
	if errors.As(err, &apiErr) && apiErr.Msg != "" {
		msg = apiErr.Msg
	}
	d.sess.Flash(c, "error", msg)
	return nil
}

