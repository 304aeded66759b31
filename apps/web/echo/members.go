package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/catiga/languagebridge/spwapi"
)

type memberPages struct {
	*pageDeps
}

func registerMemberPages(g *echo.Group, deps *pageDeps) {
	h := memberPages{deps}
	g.GET("/members", h.list)
	g.GET("/members/new", h.form)
	g.GET("/members/:id/edit", h.form)
	g.POST("/members/save", h.save)
	g.POST("/members/:id/delete", h.delete)
}

type memberListData struct {
	Members []spwapi.Member
}

func (h memberPages) list(c echo.Context) error {
	usr, _ := h.sess.Current(c)
	members, err := h.api.MemberList(c.Request().Context(), usr.Token)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "members.html", "Family members", memberListData{Members: members})
}

type memberFormData struct {
	Form     memberForm
	RelTypes []string
}

var memberRelTypes = []string{"child", "relative", "self", "other"}

func (h memberPages) form(c echo.Context) error {
	data := memberFormData{RelTypes: memberRelTypes}
	title := "Add a family member"

	if raw := c.Param("id"); raw != "" {
		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "member not found")
		}
		usr, _ := h.sess.Current(c)
		members, err := h.api.MemberList(c.Request().Context(), usr.Token)
		if err != nil {
			return err
		}
		var found bool
		for _, m := range members {
			if m.ID == memberID {
				data.Form = memberForm{
					ID:          m.ID,
					Name:        m.Name,
					Email:       m.Email,
					RelType:     m.RelType,
					RelDesc:     m.RelDesc,
					Gender:      m.Gender,
					Birthday:    m.Birthday,
					Personality: m.Personality,
					Character:   m.Character,
				}
				found = true
				break
			}
		}
		if !found {
			return echo.NewHTTPError(http.StatusNotFound, "member not found")
		}
		title = "Edit family member"
	}

	return h.render(c, http.StatusOK, "member_form.html", title, data)
}

func (h memberPages) save(c echo.Context) error {
	form := new(memberForm)
	if err := c.Bind(form); err != nil {
		return err
	}
	// validation failures never reach the backend
	if err := form.Validate(); err != nil {
		if fldErrs := h.fieldErrors(err); fldErrs != nil {
			title := "Add a family member"
			if form.ID != 0 {
				title = "Edit family member"
			}
			return h.renderWithErrors(c, "member_form.html", title, memberFormData{
				Form:     *form,
				RelTypes: memberRelTypes,
			}, fldErrs)
		}
		return err
	}

	usr, _ := h.sess.Current(c)
	_, err := h.api.MemberSave(c.Request().Context(), usr.Token, spwapi.SaveMemberRequest{
		ID:          form.ID,
		Name:        form.Name,
		Email:       form.Email,
		RelType:     form.RelType,
		RelDesc:     form.RelDesc,
		Gender:      form.Gender,
		Birthday:    form.Birthday,
		Personality: form.Personality,
		Character:   form.Character,
	})
	if err != nil {
		if redirErr := h.apiFail(c, err, "saving the member failed, please try again"); redirErr != nil {
			return redirErr
		}
	} else {
		h.sess.Flash(c, "success", "Member saved")
	}
	return c.Redirect(http.StatusSeeOther, "/profile/members")
}

func (h memberPages) delete(c echo.Context) error {
	memberID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "member not found")
	}

	usr, _ := h.sess.Current(c)
	if err = h.api.MemberDelete(c.Request().Context(), usr.Token, memberID); err != nil {
		if redirErr := h.apiFail(c, err, "deleting the member failed, please try again"); redirErr != nil {
			return redirErr
		}
	} else {
		h.sess.Flash(c, "success", "Member removed")
	}
	return c.Redirect(http.StatusSeeOther, "/profile/members")
}
