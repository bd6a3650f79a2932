package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/customer-directory-api/internal/auth"
	"github.com/customer-directory-api/internal/models"
	"github.com/customer-directory-api/internal/services"
)

// AuthController handles staff account registration and login.
type AuthController struct {
	accountService services.AccountService
	jwtSecret      []byte
}

func NewAuthController(accountService services.AccountService, jwtSecret string) *AuthController {
	return &AuthController{
		accountService: accountService,
		jwtSecret:      []byte(jwtSecret),
	}
}

// Register godoc
// @Summary Register a staff account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Name     string `json:"name"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, err.Error()))
		return
	}

	role := req.Role
	if role != "admin" && role != "manager" {
		role = "admin"
	}

	account := &models.Account{
		Email: req.Email,
		Name:  req.Name,
		Role:  role,
	}
	if err := account.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "password_hashing_failed"))
		return
	}

	if err := ac.accountService.CreateAccount(account); err != nil {
		c.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "account_already_exists"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "account_created"})
}

// Login godoc
// @Summary Log in and receive a Bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, err.Error()))
		return
	}

	account, err := ac.accountService.GetAccountByEmail(req.Email)
	if err != nil || !account.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "invalid_credentials"))
		return
	}

	token, err := auth.IssueToken(account, ac.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "token_generation_failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"type":       "Bearer",
		"expires_in": int(auth.TokenTTL.Seconds()),
	})
}
