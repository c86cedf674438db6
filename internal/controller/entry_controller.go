package controller

import (
	"errors"
	"strconv"

	"jirepedia_backend/internal/service"
	"jirepedia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EntryController struct {
	EntryService     *service.EntryService
	CommunityService *service.CommunityService
}

func NewEntryController(entryService *service.EntryService, communityService *service.CommunityService) *EntryController {
	return &EntryController{
		EntryService:     entryService,
		CommunityService: communityService,
	}
}

type CreateEntryRequest struct {
	AttemptID uint `json:"attemptId" binding:"required"`
}

// Create godoc
// @Summary 成功した挑戦を辞書エントリーとして投稿
// @Description 同一用語への再投稿は上書き。確信度が現王冠を上回れば王冠が移る
// @Tags エントリー
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateEntryRequest true "投稿する挑戦"
// @Success 201 {object} util.Response{data=model.Entry}
// @Failure 400 {object} util.Response "挑战未成功"
// @Failure 403 {object} util.Response "不是本人的挑战"
// @Failure 404 {object} util.Response "挑战不存在"
// @Router /api/entries [post]
func (c *EntryController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.EntryService.CreateFromAttempt(claims.UserID, req.AttemptID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAttemptNotSuccess):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, entry)
}

// Get godoc
// @Summary エントリー詳細
// @Tags エントリー
// @Produce  json
// @Param   id path int true "エントリーID"
// @Success 200 {object} util.Response{data=model.Entry}
// @Failure 404 {object} util.Response "エントリー不存在"
// @Router /api/entries/{id} [get]
func (c *EntryController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	entry, err := c.EntryService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrEntryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entry)
}

// ListMine godoc
// @Summary 自分のエントリー一覧
// @Tags エントリー
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Entry}
// @Router /api/entries/mine [get]
func (c *EntryController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.EntryService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// ToggleLike godoc
// @Summary いいねの切り替え
// @Tags エントリー
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "エントリーID"
// @Success 200 {object} util.Response{data=service.LikeResult}
// @Failure 404 {object} util.Response "エントリー不存在"
// @Router /api/entries/{id}/like [post]
func (c *EntryController) ToggleLike(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	result, err := c.CommunityService.ToggleLike(claims.UserID, uint(id))
	if err != nil {
		if errors.Is(err, util.ErrEntryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// CreateComment godoc
// @Summary コメント投稿
// @Tags エントリー
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "エントリーID"
// @Param   body body service.CommentRequest true "コメント内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response "エントリー不存在"
// @Router /api/entries/{id}/comments [post]
func (c *EntryController) CreateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.CommunityService.CreateComment(claims.UserID, uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrEntryNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// ListComments godoc
// @Summary コメント一覧
// @Tags エントリー
// @Produce  json
// @Param   id path int true "エントリーID"
// @Param   limit query int false "返回数量" default(50)
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/entries/{id}/comments [get]
func (c *EntryController) ListComments(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	comments, err := c.CommunityService.ListComments(uint(id), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, comments)
}

// ProposeImprovement godoc
// @Summary 改善案の提案
// @Description 他人のエントリーに対して改善案を出す
// @Tags エントリー
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "エントリーID"
// @Param   body body service.ImprovementRequest true "改善案"
// @Success 201 {object} util.Response{data=model.Improvement}
// @Failure 403 {object} util.Response "自分のエントリーには提案できない"
// @Failure 404 {object} util.Response "エントリー不存在"
// @Router /api/entries/{id}/improvements [post]
func (c *EntryController) ProposeImprovement(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	var req service.ImprovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	improvement, err := c.CommunityService.ProposeImprovement(claims.UserID, uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEntryNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, improvement)
}

type ReviewImprovementRequest struct {
	Approve bool `json:"approve"`
}

// ReviewImprovement godoc
// @Summary 改善案の審査
// @Description エントリー所有者が改善案を承認または却下する
// @Tags エントリー
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "改善案ID"
// @Param   body body ReviewImprovementRequest true "審査結果"
// @Success 200 {object} util.Response{data=model.Improvement}
// @Failure 403 {object} util.Response "所有者ではない"
// @Failure 404 {object} util.Response "改善案不存在"
// @Router /api/improvements/{id}/review [post]
func (c *EntryController) ReviewImprovement(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid improvement id")
		return
	}

	var req ReviewImprovementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	improvement, err := c.CommunityService.ReviewImprovement(claims.UserID, uint(id), req.Approve)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrImprovementNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, improvement)
}
