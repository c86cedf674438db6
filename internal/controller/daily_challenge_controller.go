package controller

import (
	"errors"

	"jirepedia_backend/internal/service"
	"jirepedia_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DailyChallengeController struct {
	ChallengeService *service.DailyChallengeService
}

func NewDailyChallengeController(challengeService *service.DailyChallengeService) *DailyChallengeController {
	return &DailyChallengeController{ChallengeService: challengeService}
}

// GetToday godoc
// @Summary 今日のチャレンジ
// @Description 当天的挑战用語。登录用户会带上完成状态
// @Tags チャレンジ
// @Produce  json
// @Success 200 {object} util.Response{data=service.DailyChallengeView}
// @Failure 404 {object} util.Response "没有可用的用語"
// @Router /api/daily-challenge [get]
func (c *DailyChallengeController) GetToday(ctx *gin.Context) {
	userID := uint(0)
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	view, err := c.ChallengeService.GetToday(userID)
	if err != nil {
		if errors.Is(err, util.ErrChallengeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}
