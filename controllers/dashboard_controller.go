package controllers

import (
	"pousada/response"
	"pousada/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

func (c *DashboardController) Summary(ctx *gin.Context) {
	summary, err := c.service.Summary(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, summary)
}
