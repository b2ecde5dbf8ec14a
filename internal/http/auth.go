package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/auth"
)

// AuthController handles sign-up, sign-in and session lifecycle for
// both listeners and administrators.
type AuthController struct {
	service  *auth.Service
	sessions *auth.SessionManager
	users    UserStore
	auditor  Auditor
}

func NewAuthController(service *auth.Service, sessions *auth.SessionManager, users UserStore, auditor Auditor) *AuthController {
	return &AuthController{service: service, sessions: sessions, users: users, auditor: auditor}
}

type signUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a new listener account and opens a session for it.
func (controller *AuthController) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.service.CreateUser(req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondConflict(c, "an account with this email already exists")
		case errors.Is(err, auth.ErrEmailInvalid),
			errors.Is(err, auth.ErrEmailRequired),
			errors.Is(err, auth.ErrPasswordRequired),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "sign-up")
		}
		return
	}

	if err := controller.sessions.CreateSession(c.Request, user, false); err != nil {
		respondInternalError(c, err, "sign-up session")
		return
	}

	controller.auditor.LogAuth(user.ID, "sign_up", "account created", c.ClientIP(), nil)
	respondCreated(c, user)
}

// SignIn authenticates a listener and opens a session.
func (controller *AuthController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.service.Authenticate(req.Email, req.Password, c.ClientIP())
	if err != nil {
		controller.respondAuthError(c, 0, "sign_in", err)
		return
	}

	if err := controller.sessions.CreateSession(c.Request, user, false); err != nil {
		respondInternalError(c, err, "sign-in session")
		return
	}

	controller.auditor.LogAuth(user.ID, "sign_in", "listener signed in", c.ClientIP(), nil)
	c.JSON(http.StatusOK, user)
}

// AdminSignIn authenticates against the admin membership table. A
// valid identity without membership never receives a session.
func (controller *AuthController) AdminSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.service.AdminSignIn(req.Email, req.Password, c.ClientIP())
	if err != nil {
		// Any session state from a partially completed sign-in is torn down
		// so a non-admin identity cannot retain one.
		controller.sessions.DestroySession(c.Request)
		controller.respondAuthError(c, 0, "admin_sign_in", err)
		return
	}

	if err := controller.sessions.CreateSession(c.Request, user, true); err != nil {
		respondInternalError(c, err, "admin sign-in session")
		return
	}

	controller.auditor.LogAuth(user.ID, "admin_sign_in", "administrator signed in", c.ClientIP(), nil)
	c.JSON(http.StatusOK, user)
}

// SignOut destroys the current session.
func (controller *AuthController) SignOut(c *gin.Context) {
	userID := GetUserID(c)
	if err := controller.sessions.DestroySession(c.Request); err != nil {
		respondInternalError(c, err, "sign-out")
		return
	}
	if userID != 0 {
		controller.auditor.LogAuth(userID, "sign_out", "session destroyed", c.ClientIP(), nil)
	}
	respondSuccess(c, "signed out")
}

// Me returns the authenticated user's own record.
func (controller *AuthController) Me(c *gin.Context) {
	user, err := controller.service.GetUserByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "me")
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	City    *string `json:"city"`
	Country *string `json:"country"`
	Bio     *string `json:"bio"`
}

// UpdateProfile patches the authenticated user's own profile fields.
func (controller *AuthController) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid profile payload")
		return
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if len(fields) == 0 {
		respondBadRequest(c, "no fields to update")
		return
	}

	user, err := controller.users.UpdateUser(GetUserID(c), fields)
	if err != nil {
		respondInternalError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Token issues a bearer token for function endpoints. Admin only.
func (controller *AuthController) Token(c *gin.Context) {
	token, expiry, err := controller.service.IssueAdminToken(GetUserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrNotAdmin) {
			respondForbidden(c, "administrator access required")
			return
		}
		respondInternalError(c, err, "issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expiry})
}

func (controller *AuthController) respondAuthError(c *gin.Context, userID uint, action string, err error) {
	controller.auditor.LogAuth(userID, action, "sign-in refused", c.ClientIP(), err)

	switch {
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidPassword):
		respondUnauthorized(c, "invalid email or password")
	case errors.Is(err, auth.ErrUserBanned):
		respondForbidden(c, "this account has been banned")
	case errors.Is(err, auth.ErrNotAdmin):
		respondForbidden(c, "this account does not have administrator access")
	case errors.Is(err, auth.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "too many failed attempts, try again later"})
	default:
		respondInternalError(c, err, action)
	}
}
