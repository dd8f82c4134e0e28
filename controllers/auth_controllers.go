package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/tableservice-client/client"
	"github.com/yeremiapane/tableservice-client/middlewares"
	"github.com/yeremiapane/tableservice-client/store"
	"github.com/yeremiapane/tableservice-client/utils"
)

type AuthController struct {
	API   *client.Client
	Creds *store.CredentialStore
}

func NewAuthController(api *client.Client, creds *store.CredentialStore) *AuthController {
	return &AuthController{API: api, Creds: creds}
}

type loginForm struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates against the backend and persists the tokens plus the
// role claim. A failed login stores nothing, so the client is never left
// half authenticated.
func (ac *AuthController) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tokens, err := ac.API.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	claims, err := utils.DecodeClaims(tokens.AccessToken)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	if err := ac.Creds.Save(tokens.AccessToken, tokens.RefreshToken, claims.Subject.Role); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Logged in", gin.H{
		"role":      claims.Subject.Role,
		"role_name": claims.Subject.Role.String(),
	})
}

// Logout clears the persisted client state.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.Creds.Clear(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// Me reports the logged-in role so shells can route without re-parsing the
// token themselves.
func (ac *AuthController) Me(c *gin.Context) {
	role, ok := middlewares.RoleFromContext(c)
	if !ok {
		utils.RespondJSON(c, http.StatusOK, "Not logged in", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current account", gin.H{
		"role":      role,
		"role_name": role.String(),
	})
}
