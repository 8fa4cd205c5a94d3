package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"whiteboardLabeler/internal/errs"
	"whiteboardLabeler/internal/models"
	"whiteboardLabeler/internal/msgs"
	"whiteboardLabeler/internal/utils"
	"whiteboardLabeler/internal/validators"
)

// ListWhiteboards godoc
// @Summary      List whiteboards
// @Tags         whiteboards
// @Produce      json
// @Success      200  {array}   models.WhiteboardSummary
// @Failure      500  {object}  models.Response
// @Router       /whiteboards [get]
func (rh *RestHandler) ListWhiteboards(ctx *gin.Context) {
	whiteboards, err := rh.whiteboardService.ListWhiteboards(ctx.Request.Context())
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, whiteboards)
}

// GetWhiteboard godoc
// @Summary      Get a whiteboard with its chunks
// @Tags         whiteboards
// @Produce      json
// @Param        id   path      string  true  "Whiteboard ID"
// @Success      200  {object}  models.Whiteboard
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id} [get]
func (rh *RestHandler) GetWhiteboard(ctx *gin.Context) {
	whiteboard, err := rh.whiteboardService.GetWhiteboard(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, whiteboard)
}

// AddChunk godoc
// @Summary      Add a chunk to a whiteboard
// @Tags         whiteboards
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Whiteboard ID"
// @Success      201  {object}  models.Chunk
// @Failure      400  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id} [post]
func (rh *RestHandler) AddChunk(ctx *gin.Context) {
	var createChunkRequest models.CreateChunkRequest
	if err := ctx.ShouldBindJSON(&createChunkRequest); err != nil {
		rh.abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}

	if validationErrs := validators.ValidateCreateChunk(&createChunkRequest); len(validationErrs) > 0 {
		rh.abortWithErrors(ctx, validationErrs...)
		return
	}

	// The body names the creator; the session is the fallback.
	contractor := strings.TrimSpace(createChunkRequest.Contractor)
	if contractor == "" {
		contractor = utils.GetContractorFromContext(ctx)
	}
	if contractor == "" {
		rh.abortWithErrors(ctx, errs.ErrContractorRequired)
		return
	}

	chunk, err := rh.whiteboardService.AddChunk(ctx.Request.Context(), ctx.Param("id"), &createChunkRequest, contractor)
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, chunk)
}

// SetComplete godoc
// @Summary      Mark a whiteboard complete or incomplete
// @Tags         whiteboards
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Whiteboard ID"
// @Success      200  {object}  models.CompleteResponse
// @Failure      400  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id} [patch]
func (rh *RestHandler) SetComplete(ctx *gin.Context) {
	var setCompleteRequest models.SetCompleteRequest
	if err := ctx.ShouldBindJSON(&setCompleteRequest); err != nil {
		rh.abortWithErrors(ctx, errs.ErrInvalidRequestBody)
		return
	}
	if validationErrs := validators.ValidateSetComplete(&setCompleteRequest); len(validationErrs) > 0 {
		rh.abortWithErrors(ctx, validationErrs...)
		return
	}

	contractor := strings.TrimSpace(setCompleteRequest.Contractor)
	if contractor == "" {
		contractor = utils.GetContractorFromContext(ctx)
	}

	complete := *setCompleteRequest.Complete
	if err := rh.whiteboardService.SetComplete(ctx.Request.Context(), ctx.Param("id"), complete, contractor); err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.CompleteResponse{Complete: complete})
}

// DeleteChunk godoc
// @Summary      Delete a chunk
// @Tags         whiteboards
// @Produce      json
// @Param        id       path  string  true  "Whiteboard ID"
// @Param        chunkId  path  string  true  "Chunk ID"
// @Success      200  {object}  models.Response
// @Failure      404  {object}  models.Response
// @Router       /whiteboards/{id}/{chunkId} [delete]
func (rh *RestHandler) DeleteChunk(ctx *gin.Context) {
	err := rh.whiteboardService.DeleteChunk(
		ctx.Request.Context(),
		ctx.Param("id"),
		ctx.Param("chunkId"),
		utils.GetContractorFromContext(ctx),
	)
	if err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgChunkDeleted,
	})
}

// ResetWhiteboards godoc
// @Summary      Mark every whiteboard incomplete and clear its contractor
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.Response
// @Router       /admin/reset [post]
func (rh *RestHandler) ResetWhiteboards(ctx *gin.Context) {
	if err := rh.importService.Reset(ctx.Request.Context()); err != nil {
		rh.abortWithErrors(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgWhiteboardsReset,
	})
}
