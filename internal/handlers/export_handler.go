package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/msgs"
	"whiteboardLabeler/internal/services"
)

// Export godoc
// @Summary      Download every chunk as CSV
// @Tags         export
// @Produce      text/csv
// @Success      200
// @Failure      500  {object}  models.Response
// @Router       /export [get]
func (rh *RestHandler) Export(ctx *gin.Context) {
	content, err := rh.exportService.ExportCSV(ctx.Request.Context())
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+services.ExportFileName)
	ctx.Data(http.StatusOK, "text/csv", content)
}

// ArchiveExport godoc
// @Summary      Upload a CSV export to object storage
// @Tags         export
// @Produce      json
// @Success      200  {object}  models.ArchiveResponse
// @Failure      500  {object}  models.Response
// @Router       /export/archive [post]
func (rh *RestHandler) ArchiveExport(ctx *gin.Context) {
	url, err := rh.exportService.ArchiveCSV(ctx.Request.Context())
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.ArchiveResponse{
		Message: msgs.MsgExportArchived,
		URL:     url,
	})
}
