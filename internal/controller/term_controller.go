package controller

import (
	"errors"
	"strconv"

	"jirepedia_backend/internal/service"
	"jirepedia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TermController struct {
	TermService *service.TermService
}

func NewTermController(termService *service.TermService) *TermController {
	return &TermController{TermService: termService}
}

// Submit godoc
// @Summary 投稿新用語
// @Description 登录用户投稿新用語，词条重复时返回409
// @Tags 用語
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.TermRequest true "用語情報"
// @Success 201 {object} util.Response{data=model.Term}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "用語已存在"
// @Router /api/terms [post]
func (c *TermController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TermRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	creatorID := claims.UserID
	term, err := c.TermService.Submit(&creatorID, req)
	if err != nil {
		if errors.Is(err, util.ErrTermAlreadyExists) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, term)
}

// List godoc
// @Summary 用語一覧
// @Tags 用語
// @Produce  json
// @Param   category query string false "カテゴリ过滤"
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/terms [get]
func (c *TermController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	category := ctx.Query("category")

	terms, total, err := c.TermService.List(category, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  terms,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Detail godoc
// @Summary 用語詳細
// @Description 用語、王冠エントリー、エントリー一覧和近期成功挑战
// @Tags 用語
// @Produce  json
// @Param   id path int true "用語ID"
// @Success 200 {object} util.Response{data=service.TermDetail}
// @Failure 404 {object} util.Response "用語不存在"
// @Router /api/terms/{id} [get]
func (c *TermController) Detail(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid term id")
		return
	}

	detail, err := c.TermService.GetDetail(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTermNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// Trending godoc
// @Summary 人気の用語
// @Tags 用語
// @Produce  json
// @Param   limit query int false "返回数量" default(10)
// @Success 200 {object} util.Response{data=[]model.Term}
// @Router /api/terms/trending [get]
func (c *TermController) Trending(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	terms, err := c.TermService.Trending(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, terms)
}
