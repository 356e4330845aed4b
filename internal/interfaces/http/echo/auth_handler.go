package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/orgstack/orgstack/internal/application/auth"
)

type AuthHandler struct {
	signup      app.Signup
	signin      app.Signin
	verifyEmail app.VerifyEmail
	logout      app.Logout
	logoutAll   app.LogoutAll
}

func NewAuthHandler(signup app.Signup, signin app.Signin, verifyEmail app.VerifyEmail, logout app.Logout, logoutAll app.LogoutAll) *AuthHandler {
	return &AuthHandler{
		signup:      signup,
		signin:      signin,
		verifyEmail: verifyEmail,
		logout:      logout,
		logoutAll:   logoutAll,
	}
}

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	out, err := h.signup.Execute(c.Request().Context(), app.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidSignup) {
			return badRequest(c, "invalid_signup", "username, email and a password of at least 8 characters are required")
		}
		if errors.Is(err, app.ErrUserExists) {
			return respondError(c, http.StatusConflict, "user_exists", "username or email already registered")
		}
		return internalError(c, "failed to sign up")
	}

	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "bad_request", "invalid request body")
	}

	out, err := h.signin.Execute(c.Request().Context(), app.SigninInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			return respondError(c, http.StatusUnauthorized, "invalid_credentials", "wrong username or password")
		}
		if errors.Is(err, app.ErrAccountInactive) {
			return forbidden(c, "account is not activated; check your verification email")
		}
		return internalError(c, "failed to sign in")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return badRequest(c, "bad_request", "token query parameter is required")
	}

	err := h.verifyEmail.Execute(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, app.ErrInvalidToken) {
			return badRequest(c, "invalid_token", "invalid or expired verification token")
		}
		if errors.Is(err, app.ErrAlreadyVerified) {
			return respondError(c, http.StatusConflict, "already_verified", "account is already verified")
		}
		return internalError(c, "failed to verify email")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: map[string]string{"status": "verified"}})
}

func (h *AuthHandler) Whoami(c echo.Context) error {
	return c.JSON(http.StatusOK, apiResponse{Data: app.ToWhoamiOutput(currentUser(c))})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.logout.Execute(c.Request().Context(), currentToken(c)); err != nil {
		return internalError(c, "failed to log out")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) LogoutAll(c echo.Context) error {
	if err := h.logoutAll.Execute(c.Request().Context(), currentUser(c).ID); err != nil {
		return internalError(c, "failed to log out")
	}
	return c.NoContent(http.StatusNoContent)
}
