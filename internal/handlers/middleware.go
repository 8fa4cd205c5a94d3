package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/msgs"
	"whiteboardLabeler/internal/utils"
)

// MustAuthenticateMiddleware is the session gate: it rejects requests
// without a resolvable session cookie and stores the contractor name on the
// context for the handlers.
func (rh *RestHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		name, err := rh.currentContractor(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []string{err.Error()},
			})
			return
		}

		ctx.Set(utils.ContractorCtxKey, name)
		ctx.Next()
	}
}

// OptionalSessionMiddleware stores the contractor name when a session exists
// and lets every request through.
func (rh *RestHandler) OptionalSessionMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if name, err := rh.currentContractor(ctx); err == nil {
			ctx.Set(utils.ContractorCtxKey, name)
		}
		ctx.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		fields := []zap.Field{
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Int("status", ctx.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", ctx.ClientIP()),
		}
		if contractor := utils.GetContractorFromContext(ctx); contractor != "" {
			fields = append(fields, zap.String("contractor", contractor))
		}
		if len(ctx.Errors) > 0 {
			fields = append(fields, zap.String("errors", ctx.Errors.String()))
		}

		switch status := ctx.Writer.Status(); {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
