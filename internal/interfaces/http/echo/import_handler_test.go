package echo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/orgstack/orgstack/internal/application/auth"
	app "github.com/orgstack/orgstack/internal/application/org"
	orgdomain "github.com/orgstack/orgstack/internal/domain/org"
	userdomain "github.com/orgstack/orgstack/internal/domain/user"
	httpecho "github.com/orgstack/orgstack/internal/interfaces/http/echo"
)

type fakeSessions struct {
	tokenHash string
	user      userdomain.User
}

func (f *fakeSessions) FindUser(ctx context.Context, tokenHash string) (userdomain.User, error) {
	if tokenHash != f.tokenHash {
		return userdomain.User{}, userdomain.ErrUserNotFound
	}
	return f.user, nil
}

type fakeStartImport struct {
	output app.StartMemberImportOutput
	err    error
}

func (f *fakeStartImport) Execute(ctx context.Context, in app.StartMemberImportInput) (app.StartMemberImportOutput, error) {
	if f.err != nil {
		return app.StartMemberImportOutput{}, f.err
	}
	return f.output, nil
}

type fakeGetImportJob struct {
	output orgdomain.ImportJobView
	err    error
}

func (f *fakeGetImportJob) Execute(ctx context.Context, in app.GetImportJobInput) (orgdomain.ImportJobView, error) {
	if f.err != nil {
		return orgdomain.ImportJobView{}, f.err
	}
	return f.output, nil
}

const testToken = "test-session-token"

func newImportServer(start app.StartMemberImport, get app.GetImportJob) *echo.Echo {
	e := echo.New()
	sessions := &fakeSessions{
		tokenHash: auth.HashToken(testToken),
		user:      userdomain.User{ID: 1, Username: "admin"},
	}
	handler := httpecho.NewImportHandler(start, get)

	authed := e.Group("/api/v1", httpecho.RequireAuth(sessions))
	authed.POST("/orgs/:slug/imports/members", handler.ImportMembers)
	authed.GET("/orgs/:slug/imports/members/:id", handler.GetImportJob)
	return e
}

func doJSON(e *echo.Echo, method, target string, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImportHandlerAccepted(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{output: app.StartMemberImportOutput{
		JobID:  "job-1",
		Status: "queued",
	}}, &fakeGetImportJob{})

	rec := doJSON(e, http.MethodPost, "/api/v1/orgs/acme-school/imports/members",
		[]byte(`{"source_path":"members.csv"}`), testToken)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rec.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	data, ok := got["data"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %#v", got["data"])
	}
	if data["job_id"] != "job-1" {
		t.Fatalf("unexpected job_id: %#v", data["job_id"])
	}
}

func TestImportHandlerRequiresAuth(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{}, &fakeGetImportJob{})

	rec := doJSON(e, http.MethodPost, "/api/v1/orgs/acme-school/imports/members",
		[]byte(`{"source_path":"members.csv"}`), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/orgs/acme-school/imports/members",
		[]byte(`{"source_path":"members.csv"}`), "wrong-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestImportHandlerInvalidSource(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{err: app.ErrInvalidImportSource}, &fakeGetImportJob{})

	rec := doJSON(e, http.MethodPost, "/api/v1/orgs/acme-school/imports/members",
		[]byte(`{"source_path":"members.json"}`), testToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImportHandlerUnknownOrganization(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{err: app.ErrOrganizationNotFound}, &fakeGetImportJob{})

	rec := doJSON(e, http.MethodPost, "/api/v1/orgs/gone/imports/members",
		[]byte(`{"source_path":"members.csv"}`), testToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestImportHandlerInternalError(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{err: errors.New("boom")}, &fakeGetImportJob{})

	rec := doJSON(e, http.MethodPost, "/api/v1/orgs/acme-school/imports/members",
		[]byte(`{"source_path":"members.csv"}`), testToken)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestGetImportJobStatus(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{}, &fakeGetImportJob{output: orgdomain.ImportJobView{
		ID:             "job-1",
		Status:         "succeeded",
		ProcessedCount: 3,
		UpdatedCount:   1,
		CreatedCount:   2,
		Attempts:       1,
	}})

	rec := doJSON(e, http.MethodGet, "/api/v1/orgs/acme-school/imports/members/job-1", nil, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v", err)
	}
	data := got["data"].(map[string]any)
	if data["status"] != "succeeded" {
		t.Fatalf("unexpected status: %#v", data["status"])
	}
	if data["updated_count"] != float64(1) || data["created_count"] != float64(2) {
		t.Fatalf("unexpected counts: %#v", data)
	}
}

func TestGetImportJobNotFound(t *testing.T) {
	t.Parallel()

	e := newImportServer(&fakeStartImport{}, &fakeGetImportJob{err: app.ErrImportJobNotFound})

	rec := doJSON(e, http.MethodGet, "/api/v1/orgs/acme-school/imports/members/nope", nil, testToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
