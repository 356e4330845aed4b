package echo

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	app "github.com/orgstack/orgstack/internal/application/org"
)

type OrgHandler struct {
	create  app.CreateOrganization
	list    app.ListOrganizations
	get     app.GetOrganization
	update  app.UpdateOrganization
	archive app.ArchiveOrganization
	remove  app.DeleteOrganization
}

func NewOrgHandler(create app.CreateOrganization, list app.ListOrganizations, get app.GetOrganization, update app.UpdateOrganization, archive app.ArchiveOrganization, remove app.DeleteOrganization) *OrgHandler {
	return &OrgHandler{
		create:  create,
		list:    list,
		get:     get,
		update:  update,
		archive: archive,
		remove:  remove,
	}
}

type orgRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

func (h *OrgHandler) Create(c echo.Context) error {
	var req orgRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	out, err := h.create.Execute(c.Request().Context(), app.CreateOrganizationInput{
		Name:      req.Name,
		About:     req.About,
		CreatorID: currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidOrganization) {
			return badRequest(c, "invalid_organization", "name is required and must be at most 50 characters")
		}
		if errors.Is(err, app.ErrOrganizationExists) {
			return respondError(c, http.StatusConflict, "organization_exists", "an organization with this name already exists")
		}
		return internalError(c, "failed to create organization")
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *OrgHandler) List(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListOrganizationsInput{
		UserID: currentUser(c).ID,
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		return internalError(c, "failed to list organizations")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *OrgHandler) Get(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetOrganizationInput{
		Slug:   c.Param("slug"),
		UserID: currentUser(c).ID,
	})
	if err != nil {
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		return internalError(c, "failed to get organization")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *OrgHandler) Update(c echo.Context) error {
	var req orgRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	err := h.update.Execute(c.Request().Context(), app.UpdateOrganizationInput{
		Slug:  c.Param("slug"),
		Name:  req.Name,
		About: req.About,
	})
	if err != nil {
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		if errors.Is(err, app.ErrInvalidOrganization) {
			return badRequest(c, "invalid_organization", "name must be at most 50 characters")
		}
		return internalError(c, "failed to update organization")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrgHandler) Archive(c echo.Context) error {
	if err := h.archive.Execute(c.Request().Context(), c.Param("slug")); err != nil {
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		return internalError(c, "failed to archive organization")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OrgHandler) Delete(c echo.Context) error {
	if err := h.remove.Execute(c.Request().Context(), c.Param("slug")); err != nil {
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		return internalError(c, "failed to delete organization")
	}
	return c.NoContent(http.StatusNoContent)
}

func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return value
}
