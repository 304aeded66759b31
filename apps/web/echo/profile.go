package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catiga/languagebridge/spwapi"
)

type profilePages struct {
	*pageDeps
}

func registerProfilePages(g *echo.Group, deps *pageDeps) {
	h := profilePages{deps}
	g.GET("", h.show)
	g.POST("", h.update)
}

type profilePageData struct {
	Profile   *spwapi.Profile
	Form      profileForm
	Countries []spwapi.Country
	MyCourses []spwapi.MyCourse
}

func (h profilePages) show(c echo.Context) error {
	usr, _ := h.sess.Current(c)
	ctx := c.Request().Context()

	profile, err := h.api.ProfileRetrieve(ctx, usr.Token)
	if err != nil {
		return err
	}

	data := profilePageData{
		Profile: profile,
		Form: profileForm{
			NickName:        profile.NickName,
			Avatar:          profile.Avatar,
			LivingCountryID: profile.LivingCountryID,
			Phone:           profile.Phone,
			NativeLanguage:  profile.NativeLanguage,
		},
	}

	if data.Countries, err = h.api.Countries(ctx); err != nil {
		h.logger.Warn("fetching countries failed", err)
	}
	if data.MyCourses, err = h.api.MyCourses(ctx, usr.Token); err != nil {
		if redirErr := h.apiFail(c, err, "could not load your courses"); redirErr != nil {
			return redirErr
		}
	}

	return h.render(c, http.StatusOK, "profile.html", "My profile", data)
}

func (h profilePages) update(c echo.Context) error {
	usr, _ := h.sess.Current(c)

	form := new(profileForm)
	if err := c.Bind(form); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		if fldErrs := h.fieldErrors(err); fldErrs != nil {
			countries, _ := h.api.Countries(c.Request().Context())
			return h.renderWithErrors(c, "profile.html", "My profile", profilePageData{
				Profile:   &spwapi.Profile{UserNo: usr.UserNo, Email: usr.Email},
				Form:      *form,
				Countries: countries,
			}, fldErrs)
		}
		return err
	}

	err := h.api.ProfileUpdate(c.Request().Context(), usr.Token, spwapi.UpdateProfileRequest{
		NickName:        form.NickName,
		Avatar:          form.Avatar,
		LivingCountryID: form.LivingCountryID,
		Phone:           form.Phone,
		NativeLanguage:  form.NativeLanguage,
	})
	if err != nil {
		if redirErr := h.apiFail(c, err, "saving your profile failed, please try again"); redirErr != nil {
			return redirErr
		}
	} else {
		h.sess.Flash(c, "success", "Profile saved")
	}
	return c.Redirect(http.StatusSeeOther, "/profile")
}
