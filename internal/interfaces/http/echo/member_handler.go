package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/orgstack/orgstack/internal/application/org"
)

type MemberHandler struct {
	list   app.ListMembers
	get    app.GetMembership
	upsert app.UpsertMember
	remove app.RemoveMember
}

func NewMemberHandler(list app.ListMembers, get app.GetMembership, upsert app.UpsertMember, remove app.RemoveMember) *MemberHandler {
	return &MemberHandler{list: list, get: get, upsert: upsert, remove: remove}
}

func (h *MemberHandler) List(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListMembersInput{
		OrgSlug: c.Param("slug"),
		Limit:   queryInt(c, "limit"),
		Offset:  queryInt(c, "offset"),
	})
	if err != nil {
		return internalError(c, "failed to list members")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *MemberHandler) Get(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetMembershipInput{
		OrgSlug:  c.Param("slug"),
		Username: c.Param("username"),
	})
	if err != nil {
		if errors.Is(err, app.ErrMembershipNotFound) {
			return notFound(c, "membership not found")
		}
		return internalError(c, "failed to get membership")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

type upsertMemberRequest struct {
	Role string `json:"role"`
}

func (h *MemberHandler) Upsert(c echo.Context) error {
	var req upsertMemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	out, err := h.upsert.Execute(c.Request().Context(), app.UpsertMemberInput{
		OrgSlug:  c.Param("slug"),
		Username: c.Param("username"),
		Role:     req.Role,
		ActorID:  currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		if errors.Is(err, app.ErrInvalidMember) {
			return badRequest(c, "invalid_member", "unknown username or role; role must be admin, teacher or student")
		}
		return internalError(c, "failed to update membership")
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, apiResponse{Data: out})
}

func (h *MemberHandler) Remove(c echo.Context) error {
	err := h.remove.Execute(c.Request().Context(), app.RemoveMemberInput{
		OrgSlug:  c.Param("slug"),
		Username: c.Param("username"),
		ActorID:  currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		if errors.Is(err, app.ErrMembershipNotFound) {
			return notFound(c, "membership not found")
		}
		return internalError(c, "failed to remove member")
	}
	return c.NoContent(http.StatusNoContent)
}
