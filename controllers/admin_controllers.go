package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/models"
	"github.com/yeremiapane/tableservice-client/utils"
)

// AdminController drives the user management screen. The USER_ADMIN account
// is never offered for edit or delete; the backend enforces the same rule
// authoritatively.
type AdminController struct {
	API *client.Client
}

func NewAdminController(api *client.Client) *AdminController {
	return &AdminController{API: api}
}

type userView struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	RoleName  string          `json:"role_name"`
	Protected bool            `json:"protected"`
}

func (ad *AdminController) ListUsers(c *gin.Context) {
	users, err := ad.API.ListUsers(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, userView{
			ID:        user.ID,
			Username:  user.Username,
			Role:      user.Role,
			RoleName:  user.Role.String(),
			Protected: models.ProtectedRole(user.Role),
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Users", views)
}

type userForm struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role" binding:"required"`
}

func (ad *AdminController) CreateUser(c *gin.Context) {
	var form userForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !form.Role.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
		return
	}
	if form.Password == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("password is required"))
		return
	}

	user, err := ad.API.CreateUser(c.Request.Context(), client.UserRequest{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

// findUser resolves the target of an update/delete so the USER_ADMIN
// protection can be checked against the user's current role, not the
// submitted one.
func (ad *AdminController) findUser(c *gin.Context, id string) (*models.User, bool) {
	users, err := ad.API.ListUsers(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return nil, false
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], true
		}
	}
	utils.RespondError(c, http.StatusNotFound, errors.New("user not found"))
	return nil, false
}

func (ad *AdminController) UpdateUser(c *gin.Context) {
	target, ok := ad.findUser(c, c.Param("user_id"))
	if !ok {
		return
	}
	if models.ProtectedRole(target.Role) {
		utils.RespondError(c, http.StatusForbidden, errors.New("the admin account cannot be modified"))
		return
	}

	var form userForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !form.Role.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown role"))
		return
	}

	user, err := ad.API.UpdateUser(c.Request.Context(), target.ID, client.UserRequest{
		Username: form.Username,
		Password: form.Password,
		Role:     form.Role,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User updated", user)
}

func (ad *AdminController) DeleteUser(c *gin.Context) {
	target, ok := ad.findUser(c, c.Param("user_id"))
	if !ok {
		return
	}
	if models.ProtectedRole(target.Role) {
		utils.RespondError(c, http.StatusForbidden, errors.New("the admin account cannot be deleted"))
		return
	}

	if err := ad.API.DeleteUser(c.Request.Context(), target.ID); err != nil {
		respondUpstreamError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", nil)
}
