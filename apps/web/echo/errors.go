package echoweb

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/catiga/languagebridge/core"
	"github.com/catiga/languagebridge/spwapi"
	logsvc "github.com/catiga/languagebridge/services/logger"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that renders
// errors as pages instead of echo's default JSON payload.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(deps *pageDeps, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors, *core.ValidationError:
			// form handlers re-render their page inline; a validation error
			// reaching here means a non-form request carried bad input
			code = http.StatusBadRequest
			message = "invalid request"
		case *spwapi.StatusError, *spwapi.Error:
			if spwapi.IsAuthFailure(origErr) {
				_ = deps.sess.Logout(ctx)
				if !ctx.Response().Committed {
					_ = ctx.Redirect(http.StatusSeeOther, "/login")
				}
				return
			}
			code = http.StatusBadGateway
			message = "the service is temporarily unavailable, please try again"
			deps.logger.Error("backend call failed", err)
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)

			args := []interface{}{errors.Wrap(err, message)}
			if usr, ok := deps.sess.Current(ctx); ok {
				args = append(args, logsvc.Person{ID: usr.UserNo, Name: usr.Name, Email: usr.Email})
			}
			deps.logger.Error(message, args...)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = deps.render(ctx, code, "error.html", http.StatusText(code), echo.Map{
					"Code":    code,
					"Message": message,
				})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
