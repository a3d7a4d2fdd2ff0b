package controller

import (
	"report_backend/internal/service"
	"report_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IndividualController struct {
	service *service.IndividualService
	export  *service.ExportService
}

func NewIndividualController(s *service.IndividualService, export *service.ExportService) *IndividualController {
	return &IndividualController{service: s, export: export}
}

// Identifiers and scores are accepted both as JSON strings and numbers.
type PostIndividualRequest struct {
	ModuleName        util.Loose `json:"module_name" swaggertype:"string"`
	ModuleID          util.Loose `json:"module_id" swaggertype:"string"`
	ModulePocName     util.Loose `json:"module_poc_name" swaggertype:"string"`
	ModulePocID       util.Loose `json:"module_poc_id" swaggertype:"string"`
	UserID            util.Loose `json:"user_id" swaggertype:"string"`
	ResultTestID      util.Loose `json:"result_test_id" swaggertype:"string"`
	ResultMcqScore    util.Loose `json:"result_mcq_score" swaggertype:"string"`
	ResultCodingScore util.Loose `json:"result_coding_score" swaggertype:"string"`
	TotalMark         util.Loose `json:"total_mark" swaggertype:"string"`
	Date              string     `json:"date" example:"2024-01-01"`
}

type UpdateIndividualRequest struct {
	UserID            util.Loose `json:"user_id" swaggertype:"string"`
	ResultTestID      util.Loose `json:"result_test_id" swaggertype:"string"`
	MatchDate         string     `json:"match_date" example:"2024-01-01"`
	Date              string     `json:"date" example:"2024-01-02"`
	ResultMcqScore    util.Loose `json:"result_mcq_score" swaggertype:"string"`
	ResultCodingScore util.Loose `json:"result_coding_score" swaggertype:"string"`
	TotalMark         util.Loose `json:"total_mark" swaggertype:"string"`
	ModuleName        util.Loose `json:"module_name" swaggertype:"string"`
	ModuleID          util.Loose `json:"module_id" swaggertype:"string"`
	ModulePocName     util.Loose `json:"module_poc_name" swaggertype:"string"`
	ModulePocID       util.Loose `json:"module_poc_id" swaggertype:"string"`
}

type DeleteTestResponse struct {
	Message       string      `json:"message"`
	UpdatedReport interface{} `json:"updatedReport"`
}

// PostIndividual godoc
// @Summary Submit a test attempt
// @Description Creates the user's report on first submission, otherwise appends the attempt. One attempt per date.
// @Tags individual
// @Accept json
// @Produce json
// @Param body body PostIndividualRequest true "Attempt"
// @Success 201 {object} model.Individual
// @Failure 400 {object} util.Response
// @Router /individual/post-individual [post]
func (c *IndividualController) PostIndividual(ctx *gin.Context) {
	var req PostIndividualRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	individual, err := c.service.SubmitAttempt(ctx.Request.Context(), service.SubmitAttemptInput{
		UserID: req.UserID.Raw,
		Module: service.ModuleInfo{
			ModuleName:    req.ModuleName.Raw,
			ModuleID:      req.ModuleID.Raw,
			ModulePocName: req.ModulePocName.Raw,
			ModulePocID:   req.ModulePocID.Raw,
		},
		ResultTestID: req.ResultTestID.Raw,
		McqScore:     req.ResultMcqScore,
		CodingScore:  req.ResultCodingScore,
		TotalMark:    req.TotalMark,
		Date:         req.Date,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, individual)
}

// GetAllIndividual godoc
// @Summary List every report
// @Tags individual
// @Produce json
// @Success 200 {array} model.Individual
// @Router /individual/get-all-individual [get]
func (c *IndividualController) GetAllIndividual(ctx *gin.Context) {
	individuals, err := c.service.ListAll(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, individuals)
}

// GetIndividualByUserID godoc
// @Summary Get a user's report
// @Tags individual
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} model.Individual
// @Failure 404 {object} util.Response
// @Router /individual/get-by-id-individual/{user_id} [get]
func (c *IndividualController) GetIndividualByUserID(ctx *gin.Context) {
	individual, err := c.service.GetByUser(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, individual)
}

// UpdateIndividual godoc
// @Summary Update a test attempt
// @Description Updates the first attempt matching result_test_id (and match_date when given). Absent scores keep their value.
// @Tags individual
// @Accept json
// @Produce json
// @Param body body UpdateIndividualRequest true "Partial attempt"
// @Success 200 {object} model.Individual
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /individual/update-individual [put]
func (c *IndividualController) UpdateIndividual(ctx *gin.Context) {
	var req UpdateIndividualRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	individual, err := c.service.UpdateAttempt(ctx.Request.Context(), service.UpdateAttemptInput{
		UserID:       req.UserID.Raw,
		ResultTestID: req.ResultTestID.Raw,
		MatchDate:    req.MatchDate,
		Date:         req.Date,
		McqScore:     req.ResultMcqScore,
		CodingScore:  req.ResultCodingScore,
		TotalMark:    req.TotalMark,
		Module: service.ModuleInfo{
			ModuleName:    req.ModuleName.Raw,
			ModuleID:      req.ModuleID.Raw,
			ModulePocName: req.ModulePocName.Raw,
			ModulePocID:   req.ModulePocID.Raw,
		},
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, individual)
}

// DeleteTest godoc
// @Summary Delete test attempts
// @Description Removes every attempt with the given result_test_id, or only the one on date.
// @Tags individual
// @Produce json
// @Param user_id path string true "User ID"
// @Param result_test_id path string true "Test ID"
// @Param date query string false "Only delete the attempt on this date"
// @Success 200 {object} DeleteTestResponse
// @Failure 404 {object} util.Response
// @Router /individual/delete-test/{user_id}/{result_test_id} [delete]
func (c *IndividualController) DeleteTest(ctx *gin.Context) {
	individual, err := c.service.DeleteAttempt(ctx.Request.Context(),
		ctx.Param("user_id"),
		ctx.Param("result_test_id"),
		ctx.Query("date"),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, DeleteTestResponse{
		Message:       "Test deleted successfully",
		UpdatedReport: individual,
	})
}

// ExportIndividuals godoc
// @Summary Export every report
// @Description Writes all reports as one JSON object to the configured storage.
// @Tags individual
// @Produce json
// @Success 201 {object} service.ExportResult
// @Failure 500 {object} util.Response
// @Router /individual/export [post]
func (c *IndividualController) ExportIndividuals(ctx *gin.Context) {
	res, err := c.export.ExportIndividuals(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, res)
}
