package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IslamGh2004/sawtlib/internal/auth"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// UsersController exposes the admin account management endpoints and
// the create-user function endpoint used with a bearer token.
type UsersController struct {
	users   UserStore
	auth    *auth.Service
	auditor Auditor
}

func NewUsersController(users UserStore, authService *auth.Service, auditor Auditor) *UsersController {
	return &UsersController{users: users, auth: authService, auditor: auditor}
}

// List returns all accounts, optionally filtered by a search query.
func (controller *UsersController) List(c *gin.Context) {
	if query := c.Query("q"); query != "" {
		users, err := controller.users.SearchUsers(query)
		if err != nil {
			respondInternalError(c, err, "search users")
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
		return
	}

	users, err := controller.users.GetAllUsers()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// Get returns one account by ID.
func (controller *UsersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := controller.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

type banRequest struct {
	Banned bool `json:"banned"`
}

// SetBanned bans or unbans an account. Banned users cannot sign in
// and their existing sessions are rejected by the auth middleware.
func (controller *UsersController) SetBanned(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid ban payload")
		return
	}

	if id == GetUserID(c) {
		respondBadRequest(c, "cannot ban your own account")
		return
	}

	if _, err := controller.users.GetUserByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "ban user")
		return
	}

	if err := controller.users.SetBanned(id, req.Banned); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, "ban", "", id, err)
		respondInternalError(c, err, "ban user")
		return
	}

	action := "unban"
	if req.Banned {
		action = "ban"
	}
	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, action, "", id, nil)
	respondSuccess(c, "user updated")
}

// Delete removes an account together with its favorites, progress and
// settings rows.
func (controller *UsersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if id == GetUserID(c) {
		respondBadRequest(c, "cannot delete your own account")
		return
	}

	if _, err := controller.users.GetUserByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "delete user")
		return
	}

	if err := controller.users.DeleteUser(id); err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, "delete", "", id, err)
		respondInternalError(c, err, "delete user")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, "delete", "", id, nil)
	respondSuccess(c, "user deleted")
}

type grantAdminRequest struct {
	Admin bool `json:"admin"`
}

// SetAdmin grants or revokes admin membership for an account.
func (controller *UsersController) SetAdmin(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req grantAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid admin payload")
		return
	}

	if id == GetUserID(c) && !req.Admin {
		respondBadRequest(c, "cannot revoke your own admin access")
		return
	}

	if _, err := controller.users.GetUserByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "set admin")
		return
	}

	var err error
	action := "revoke_admin"
	if req.Admin {
		action = "grant_admin"
		err = controller.users.GrantAdmin(id)
	} else {
		err = controller.users.RevokeAdmin(id)
	}
	if err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, action, "", id, err)
		respondInternalError(c, err, "set admin")
		return
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, action, "", id, nil)
	respondSuccess(c, "user updated")
}

type createUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Bio      string `json:"bio"`
}

// CreateUser is the function endpoint the dashboard invokes with an
// admin bearer token to provision an account on someone's behalf.
func (controller *UsersController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.auth.CreateUser(req.Email, req.Password, req.FullName)
	if err != nil {
		controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, "create", req.Email, 0, err)
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
			respondInternalError(c, err, "create user")
		}
		return
	}

	fields := map[string]any{}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.City != "" {
		fields["city"] = req.City
	}
	if req.Country != "" {
		fields["country"] = req.Country
	}
	if req.Bio != "" {
		fields["bio"] = req.Bio
	}
	if len(fields) > 0 {
		if user, err = controller.users.UpdateUser(user.ID, fields); err != nil {
			respondInternalError(c, err, "create user profile")
			return
		}
	}

	controller.auditor.LogAdminAction(GetUserID(c), entities.AuditEventUser, "create", user.Email, user.ID, nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}
