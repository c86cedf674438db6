package controller

import (
	"errors"
	"strconv"

	"jirepedia_backend/internal/service"
	"jirepedia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JudgeController struct {
	JudgementService *service.JudgementService
}

func NewJudgeController(judgementService *service.JudgementService) *JudgeController {
	return &JudgeController{JudgementService: judgementService}
}

// Submit godoc
// @Summary 提交説明文を判定
// @Description NGワード・公平性チェックを経てAIが用語を推測し、成功なら経験値を付与
// @Tags 判定
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.JudgeRequest true "判定リクエスト"
// @Success 200 {object} util.Response{data=service.JudgeResponse}
// @Failure 400 {object} util.Response "NGワード・公平性违规或参数错误"
// @Failure 404 {object} util.Response "用語不存在"
// @Failure 500 {object} util.Response "AI判定失败"
// @Router /api/judge [post]
func (c *JudgeController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.JudgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.JudgementService.Submit(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		var rejection *service.PipelineRejection
		switch {
		case errors.As(err, &rejection):
			util.BadRequest(ctx, rejection.Message)
		case errors.Is(err, util.ErrExplanationTooShort):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrTermNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrJudgementFailed):
			util.Error(ctx, 500, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// GetAttempt godoc
// @Summary 挑戦結果
// @Description 查看单次挑战的判定结果，仅限本人
// @Tags 判定
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "挑戦ID"
// @Success 200 {object} util.Response{data=model.Attempt}
// @Failure 403 {object} util.Response "无权查看"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/attempts/{id} [get]
func (c *JudgeController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	attempt, err := c.JudgementService.GetAttempt(claims.UserID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, attempt)
}
