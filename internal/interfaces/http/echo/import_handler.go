package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/orgstack/orgstack/internal/application/org"
)

type ImportHandler struct {
	start app.StartMemberImport
	get   app.GetImportJob
}

type importMembersRequest struct {
	SourcePath string `json:"source_path"`
}

func NewImportHandler(start app.StartMemberImport, get app.GetImportJob) *ImportHandler {
	return &ImportHandler{start: start, get: get}
}

func (h *ImportHandler) ImportMembers(c echo.Context) error {
	var req importMembersRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	out, err := h.start.Execute(c.Request().Context(), app.StartMemberImportInput{
		OrgSlug:    c.Param("slug"),
		SourcePath: req.SourcePath,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportSource) {
			return badRequest(c, "invalid_source", "source_path must be a .csv file")
		}
		if errors.Is(err, app.ErrOrganizationNotFound) {
			return notFound(c, "organization not found")
		}
		return internalError(c, "failed to enqueue import job")
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) GetImportJob(c echo.Context) error {
	out, err := h.get.Execute(c.Request().Context(), app.GetImportJobInput{
		OrgSlug: c.Param("slug"),
		JobID:   c.Param("id"),
	})
	if err != nil {
		if errors.Is(err, app.ErrImportJobNotFound) {
			return notFound(c, "import job not found")
		}
		return internalError(c, "failed to get import job")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
