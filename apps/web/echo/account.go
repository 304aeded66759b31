package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/catiga/languagebridge/spwapi"
)

type accountPages struct {
	*pageDeps
}

func registerAccountPages(e *echo.Echo, deps *pageDeps) {
	a := accountPages{deps}
	e.GET("/register", a.registerPage)
	e.POST("/register", a.registerSubmit)
	e.GET("/login", a.loginPage)
	e.POST("/login", a.loginSubmit)
	e.POST("/logout", a.logout)
}

type registerPageData struct {
	Form      registerForm
	Countries []spwapi.Country
}

func (a accountPages) registerPage(c echo.Context) error {
	return a.render(c, http.StatusOK, "register.html", "Create your account", registerPageData{
		Countries: a.countries(c),
	})
}

func (a accountPages) registerSubmit(c echo.Context) error {
	form := new(registerForm)
	if err := c.Bind(form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		if fldErrs := a.fieldErrors(err); fldErrs != nil {
			return a.renderWithErrors(c, "register.html", "Create your account", registerPageData{
				Form:      *form,
				Countries: a.countries(c),
			}, fldErrs)
		}
		return err
	}

	_, err := a.api.Register(c.Request().Context(), spwapi.RegisterRequest{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
		Country:  form.Country,
		Language: form.Language,
	})
	if err != nil {
		if redirErr := a.apiFail(c, err, "registration failed, please try again"); redirErr != nil {
			return redirErr
		}
		return a.render(c, http.StatusOK, "register.html", "Create your account", registerPageData{
			Form:      *form,
			Countries: a.countries(c),
		})
	}

	a.sess.Flash(c, "success", "Account created, you can sign in now")
	return c.Redirect(http.StatusSeeOther, "/login")
}

type loginPageData struct {
	Form loginForm
}

func (a accountPages) loginPage(c echo.Context) error {
	return a.render(c, http.StatusOK, "login.html", "Sign in", loginPageData{
		Form: loginForm{Next: c.QueryParam("next")},
	})
}

func (a accountPages) loginSubmit(c echo.Context) error {
	form := new(loginForm)
	if err := c.Bind(form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		if fldErrs := a.fieldErrors(err); fldErrs != nil {
			return a.renderWithErrors(c, "login.html", "Sign in", loginPageData{Form: *form}, fldErrs)
		}
		return err
	}

	res, err := a.api.Login(c.Request().Context(), spwapi.LoginRequest{
		LoginName: form.LoginName,
		Password:  form.Password,
	})
	if err != nil {
		if redirErr := a.apiFail(c, err, "sign in failed, please check your credentials"); redirErr != nil {
			return redirErr
		}
		return a.render(c, http.StatusOK, "login.html", "Sign in", loginPageData{Form: *form})
	}

	usr := SessionUser{UserNo: res.UserNo, Name: res.Name, Email: res.Email, Token: res.Token}
	if err = a.sess.Login(c, usr, form.Remember); err != nil {
		return errors.Wrap(err, "persisting login")
	}

	dest := form.Next
	if dest == "" {
		dest = "/profile"
	}
	return c.Redirect(http.StatusSeeOther, dest)
}

func (a accountPages) logout(c echo.Context) error {
	if err := a.sess.Logout(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// countries fetches the country options; an empty list degrades the select to
// free entry rather than blocking the page.
func (a accountPages) countries(c echo.Context) []spwapi.Country {
	countries, err := a.api.Countries(c.Request().Context())
	if err != nil {
		a.logger.Warn("fetching countries failed", err)
		return nil
	}
	return countries
}
