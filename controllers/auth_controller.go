package controllers

import (
	"net/http"
	"time"

	"lumina-store/libs"
	"lumina-store/middleware"
	"lumina-store/models"
	"lumina-store/services"
	"lumina-store/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Sessions   *services.SessionService
	JWTSecret  string
	SessionTTL time.Duration
}

// CreateSession godoc
// @Summary Start a storefront session
// @Description Issues a session token carrying an empty cart and no identity
// @Tags Sessions
// @Produce json
// @Success 201 {object} models.Response{data=models.SessionResponse}
// @Router /sessions [post]
func (ctrl *AuthController) CreateSession(c *gin.Context) {
	sess := ctrl.Sessions.Create()

	token, err := utils.GenerateSessionToken(ctrl.JWTSecret, sess.ID, ctrl.SessionTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Session created",
		Data:    models.SessionResponse{SessionID: sess.ID, Token: token},
	})
}

// GetProfile godoc
// @Summary Current identity
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.IdentityView}
// @Router /auth/me [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Identity retrieved",
		Data:    sess.Identity.View(),
	})
}

// Login godoc
// @Summary Sign in
// @Description Mock sign-in: sets the display identity, no credential check
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SignInRequest true "Sign-in Request"
// @Success 200 {object} models.Response{data=models.IdentityView}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	sess.Identity.SignIn(req.Email, req.Name)
	libs.RequestLogger(c).Info("signed in")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Signed in",
		Data:    sess.Identity.View(),
	})
}

// Register godoc
// @Summary Sign up
// @Description Mock sign-up with simulated latency; the password is only length-checked
// @Tags Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SignUpRequest true "Sign-up Request"
// @Success 201 {object} models.Response{data=models.IdentityView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	sess := middleware.CurrentSession(c)
	if _, err := sess.Identity.SignUp(c.Request.Context(), req.Email, req.Name); err != nil {
		respondError(c, err)
		return
	}
	libs.RequestLogger(c).Info("signed up")

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Account created",
		Data:    sess.Identity.View(),
	})
}

// Logout godoc
// @Summary Sign out
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	sess.Identity.SignOut()
	libs.RequestLogger(c).Info("signed out")

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Signed out",
		Data:    sess.Identity.View(),
	})
}
