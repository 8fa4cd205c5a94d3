package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/msgs"
	"whiteboardLabeler/internal/services"
)

type RestHandler struct {
	authService       *services.AuthenticationService
	whiteboardService *services.WhiteboardService
	exportService     *services.ExportService
	importService     *services.ImportService
	log               *zap.Logger
}

func NewRestHandler(
	authService *services.AuthenticationService,
	whiteboardService *services.WhiteboardService,
	exportService *services.ExportService,
	importService *services.ImportService,
	log *zap.Logger,
) *RestHandler {
	return &RestHandler{
		authService:       authService,
		whiteboardService: whiteboardService,
		exportService:     exportService,
		importService:     importService,
		log:               log,
	}
}

// abortWithErrors writes the json error envelope. The status comes from the
// first error's kind. Client errors echo their text; server errors only name
// the failing operation and the full chain goes to the log.
func (rh *RestHandler) abortWithErrors(ctx *gin.Context, errors ...error) {
	status := errs.StatusCode(errors[0])
	if status < 500 {
		ctx.AbortWithStatusJSON(status, models.Response{
			Success: false,
			Message: errors[0].Error(),
			Errors:  models.ErrorStrings(errors),
		})
		return
	}

	rh.log.Error("request failed",
		zap.String("method", ctx.Request.Method),
		zap.String("path", ctx.FullPath()),
		zap.Errors("errors", errors))

	response := models.Response{Success: false, Message: msgs.MsgOperationFailed}
	if cause := errs.ServerCause(errors[0]); cause != nil {
		response.Message += ": " + cause.Error()
		response.Errors = []string{cause.Error()}
	}
	ctx.AbortWithStatusJSON(status, response)
}

// Health godoc
// @Summary      Liveness probe
// @Produce      json
// @Success      200
// @Router       /health [get]
func (rh *RestHandler) Health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"status": "ok"})
}
