package controllers

import (
	"pousada/dto"
	"pousada/models"
	"pousada/response"
	"pousada/services"

	"github.com/gin-gonic/gin"
)

type AddonController struct {
	service *services.AddonService
}

func NewAddonController(service *services.AddonService) *AddonController {
	return &AddonController{service: service}
}

func (c *AddonController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(items))
}

func (c *AddonController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	a, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, a)
}

func (c *AddonController) Create(ctx *gin.Context) {
	var req dto.CreateAddonRequest
	if !bindJSON(ctx, &req) {
		return
	}
	a, err := c.service.Create(ctx.Request.Context(), &models.Addon{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, a)
}

func (c *AddonController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAddonRequest
	if !bindJSON(ctx, &req) {
		return
	}
	a, err := c.service.Update(ctx.Request.Context(), id, req.Name, req.Description, req.Price)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, a)
}

func (c *AddonController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.service.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	response.Deleted(ctx)
}
