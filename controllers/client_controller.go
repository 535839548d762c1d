package controllers

import (
	"strconv"

	"pousada/dto"
	"pousada/models"
	"pousada/response"
	"pousada/services"
	"pousada/utils"

	"github.com/gin-gonic/gin"
)

type ClientController struct {
	service *services.ClientService
}

func NewClientController(service *services.ClientService) *ClientController {
	return &ClientController{service: service}
}

func (c *ClientController) List(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context(), ctx.Query("search"))
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(items))
}

// Suggest powers the name autocomplete of the booking form
func (c *ClientController) Suggest(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	items, err := c.service.Suggest(ctx.Request.Context(), ctx.Query("q"), limit)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(items))
}

func (c *ClientController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, detail)
}

func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.CreateClientRequest
	if !bindJSON(ctx, &req) {
		return
	}
	birthDate, err := utils.ParseOptionalDate("birthDate", req.BirthDate)
	if err != nil {
		fail(ctx, err)
		return
	}
	client, err := c.service.Create(ctx.Request.Context(), &models.Client{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Document:    req.Document,
		IDCard:      req.IDCard,
		BirthDate:   birthDate,
		Nationality: req.Nationality,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, client)
}

func (c *ClientController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateClientRequest
	if !bindJSON(ctx, &req) {
		return
	}
	birthDate, err := utils.ParseOptionalDate("birthDate", req.BirthDate)
	if err != nil {
		fail(ctx, err)
		return
	}
	client, err := c.service.Update(ctx.Request.Context(), id, services.ClientPatch{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Document:    req.Document,
		IDCard:      req.IDCard,
		BirthDate:   birthDate,
		Nationality: req.Nationality,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, client)
}

func (c *ClientController) Delete(ctx *gin.Context) {
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
