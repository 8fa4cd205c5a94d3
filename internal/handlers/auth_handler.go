package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/msgs"
	"whiteboardLabeler/internal/utils"
	"whiteboardLabeler/internal/validators"
)

// Login godoc
// @Summary      Log a contractor in by name
// @Description  Creates the contractor on first login and sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.AuthResponse
// @Failure      400  {object}  models.Response
// @Router       /auth [post]
func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.AuthRequest
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		rh.log.Debug("login body binding failed", zap.Error(err))
		rh.abortWithErrors(ctx, errs.ErrNameRequired)
		return
	}

	name, validationErrs := validators.ValidateName(&loginData)
	if len(validationErrs) > 0 {
		rh.abortWithErrors(ctx, validationErrs...)
		return
	}

	_, token, err := rh.authService.Authenticate(ctx.Request.Context(), name)
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}

	utils.SetSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, models.AuthResponse{
		Message: msgs.MsgAuthenticated,
		Name:    name,
	})
}

// Session godoc
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.AuthResponse
// @Failure      401  {object}  models.Response
// @Router       /auth [get]
func (rh *RestHandler) Session(ctx *gin.Context) {
	name, err := rh.currentContractor(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgNotAuthenticated,
			Errors:  []string{err.Error()},
		})
		return
	}
	ctx.JSON(http.StatusOK, models.AuthResponse{Name: name})
}

// Logout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /auth [delete]
func (rh *RestHandler) Logout(ctx *gin.Context) {
	utils.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgLoggedOut,
	})
}

func (rh *RestHandler) currentContractor(ctx *gin.Context) (string, error) {
	token, err := utils.GetSessionCookie(ctx)
	if err != nil {
		return "", err
	}
	return rh.authService.CurrentSession(token)
}
