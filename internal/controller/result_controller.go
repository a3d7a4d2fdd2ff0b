package controller

import (
	"report_backend/internal/model"
	"report_backend/internal/service"
	"report_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	service *service.ResultService
}

func NewResultController(s *service.ResultService) *ResultController {
	return &ResultController{service: s}
}

type PostResultRequest struct {
	ResultID         util.Loose `json:"result_id" swaggertype:"string"`
	ResultUserID     util.Loose `json:"result_user_id" swaggertype:"string"`
	ResultTestID     util.Loose `json:"result_test_id" swaggertype:"string"`
	ResultScore      util.Loose `json:"result_score" swaggertype:"number"`
	ResultTotalScore util.Loose `json:"result_total_score" swaggertype:"number"`
	ResultPocID      util.Loose `json:"result_poc_id" swaggertype:"string"`
}

// UpdateResultRequest overwrites only the fields that are sent.
type UpdateResultRequest struct {
	ResultID         util.Loose `json:"result_id" swaggertype:"string"`
	ResultUserID     util.Loose `json:"result_user_id" swaggertype:"string"`
	ResultTestID     util.Loose `json:"result_test_id" swaggertype:"string"`
	ResultScore      util.Loose `json:"result_score" swaggertype:"number"`
	ResultTotalScore util.Loose `json:"result_total_score" swaggertype:"number"`
	ResultPocID      util.Loose `json:"result_poc_id" swaggertype:"string"`
}

func (r UpdateResultRequest) patch() model.ResultPatch {
	var p model.ResultPatch
	if r.ResultUserID.Present() {
		p.ResultUserID = &r.ResultUserID.Raw
	}
	if r.ResultTestID.Present() {
		p.ResultTestID = &r.ResultTestID.Raw
	}
	if r.ResultScore.Present() {
		score := r.ResultScore.Float()
		p.ResultScore = &score
	}
	if r.ResultTotalScore.Present() {
		total := r.ResultTotalScore.Float()
		p.ResultTotalScore = &total
	}
	if r.ResultPocID.Present() {
		p.ResultPocID = &r.ResultPocID.Raw
	}
	return p
}

// GetResults godoc
// @Summary List every result
// @Tags results
// @Produce json
// @Success 200 {array} model.Result
// @Router /results/get-result [get]
func (c *ResultController) GetResults(ctx *gin.Context) {
	results, err := c.service.ListResults(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// PostResult godoc
// @Summary Store a result
// @Tags results
// @Accept json
// @Produce json
// @Param body body PostResultRequest true "Result"
// @Success 201 {object} util.MessageResponse{result=model.Result}
// @Failure 400 {object} util.Response
// @Router /results/post-result [post]
func (c *ResultController) PostResult(ctx *gin.Context) {
	var req PostResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.CreateResult(ctx.Request.Context(), service.CreateResultInput{
		ResultID:         req.ResultID.Raw,
		ResultUserID:     req.ResultUserID.Raw,
		ResultTestID:     req.ResultTestID.Raw,
		ResultScore:      req.ResultScore,
		ResultTotalScore: req.ResultTotalScore,
		ResultPocID:      req.ResultPocID.Raw,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, util.MessageResponse{Message: "Result stored successfully", Result: result})
}

// UpdateResult godoc
// @Summary Update a result
// @Tags results
// @Accept json
// @Produce json
// @Param body body UpdateResultRequest true "Fields to overwrite"
// @Success 200 {object} util.MessageResponse{result=model.Result}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /results/update-result [put]
func (c *ResultController) UpdateResult(ctx *gin.Context) {
	var req UpdateResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.service.UpdateResult(ctx.Request.Context(), req.ResultID.Raw, req.patch())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.MessageResponse{Message: "Result updated successfully", Result: result})
}

// DeleteResult godoc
// @Summary Delete a result
// @Tags results
// @Produce json
// @Param result_id path string true "Result ID"
// @Success 200 {object} util.MessageResponse{result=model.Result}
// @Failure 404 {object} util.Response
// @Router /results/delete-by-result-id/{result_id} [delete]
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	result, err := c.service.DeleteResult(ctx.Request.Context(), ctx.Param("result_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.MessageResponse{Message: "Result deleted successfully", Result: result})
}

// GetResultByUser godoc
// @Summary Score summary of a user
// @Description Sums every result_score of the user; percentage is relative to the configured maximum.
// @Tags results
// @Produce json
// @Param result_user_id path string true "User ID"
// @Success 200 {object} model.ScoreSummary
// @Failure 404 {object} util.Response
// @Router /results/get-result-by-user/{result_user_id} [get]
func (c *ResultController) GetResultByUser(ctx *gin.Context) {
	summary, err := c.service.ScoreSummary(ctx.Request.Context(), ctx.Param("result_user_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// CheckResult godoc
// @Summary Check whether a user already has a result for a test
// @Tags results
// @Produce json
// @Param user_id query string true "User ID"
// @Param test_id query string true "Test ID"
// @Success 200 {object} map[string]bool
// @Router /results/results/check [get]
func (c *ResultController) CheckResult(ctx *gin.Context) {
	exists, err := c.service.ResultExists(ctx.Request.Context(), ctx.Query("user_id"), ctx.Query("test_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"exists": exists})
}
