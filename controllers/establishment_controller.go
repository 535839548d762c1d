package controllers

import (
	"pousada/dto"
	"pousada/models"
	"pousada/response"
	"pousada/services"

	"github.com/gin-gonic/gin"
)

type EstablishmentController struct {
	service *services.EstablishmentService
}

func NewEstablishmentController(service *services.EstablishmentService) *EstablishmentController {
	return &EstablishmentController{service: service}
}

func (c *EstablishmentController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context(), services.EstablishmentFilter{
		Status: ctx.Query("status"),
		Search: ctx.Query("search"),
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(items))
}

func (c *EstablishmentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	e, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, e)
}

func (c *EstablishmentController) Create(ctx *gin.Context) {
	var req dto.CreateEstablishmentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	e, err := c.service.Create(ctx.Request.Context(), &models.Establishment{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, e)
}

func (c *EstablishmentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEstablishmentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	e, err := c.service.Update(ctx.Request.Context(), id, services.EstablishmentPatch{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Description: req.Description,
		Status:      req.Status,
		Color:       req.Color,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, e)
}

func (c *EstablishmentController) Delete(ctx *gin.Context) {
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
