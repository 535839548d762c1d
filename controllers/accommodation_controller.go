package controllers

import (
	"pousada/constants"
	"pousada/dto"
	"pousada/models"
	"pousada/response"
	"pousada/services"
	"pousada/utils"

	"github.com/gin-gonic/gin"
)

type AccommodationController struct {
	service      *services.AccommodationService
	types        *services.AccommodationTypeService
	availability *services.AvailabilityService
}

type AccommodationControllerOptions struct {
	Accommodations *services.AccommodationService
	Types          *services.AccommodationTypeService
	Availability   *services.AvailabilityService
}

func NewAccommodationController(opts AccommodationControllerOptions) *AccommodationController {
	return &AccommodationController{
		service:      opts.Accommodations,
		types:        opts.Types,
		availability: opts.Availability,
	}
}

func (c *AccommodationController) List(ctx *gin.Context) {
	establishmentID, ok := queryUint(ctx, "establishmentId")
	if !ok {
		return
	}
	typeID, ok := queryUint(ctx, "accommodationTypeId")
	if !ok {
		return
	}
	items, err := c.service.List(ctx.Request.Context(), services.AccommodationFilter{
		EstablishmentID:     establishmentID,
		AccommodationTypeID: typeID,
		Status:              ctx.Query("status"),
		Search:              ctx.Query("search"),
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(items))
}

func (c *AccommodationController) Get(ctx *gin.Context) {
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

func (c *AccommodationController) Create(ctx *gin.Context) {
	var req dto.CreateAccommodationRequest
	if !bindJSON(ctx, &req) {
		return
	}
	a, err := c.service.Create(ctx.Request.Context(), &models.Accommodation{
		Name:                req.Name,
		RoomNumber:          req.RoomNumber,
		Capacity:            req.Capacity,
		BasePrice:           req.BasePrice,
		Status:              req.Status,
		Description:         req.Description,
		Amenities:           models.StringList(req.Amenities),
		ImageURL:            req.ImageURL,
		EstablishmentID:     req.EstablishmentID,
		AccommodationTypeID: req.AccommodationTypeID,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, a)
}

func (c *AccommodationController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAccommodationRequest
	if !bindJSON(ctx, &req) {
		return
	}
	a, err := c.service.Update(ctx.Request.Context(), id, services.AccommodationPatch{
		Name:                req.Name,
		RoomNumber:          req.RoomNumber,
		Capacity:            req.Capacity,
		BasePrice:           req.BasePrice,
		Status:              req.Status,
		Description:         req.Description,
		Amenities:           req.Amenities,
		ImageURL:            req.ImageURL,
		EstablishmentID:     req.EstablishmentID,
		AccommodationTypeID: req.AccommodationTypeID,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, a)
}

func (c *AccommodationController) Delete(ctx *gin.Context) {
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

// Availability answers whether the room is free for checkIn..checkOut
func (c *AccommodationController) Availability(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	checkIn, err := utils.ParseDate("checkIn", ctx.Query("checkIn"))
	if err != nil {
		fail(ctx, err)
		return
	}
	checkOut, err := utils.ParseDate("checkOut", ctx.Query("checkOut"))
	if err != nil {
		fail(ctx, err)
		return
	}
	excludeID, ok := queryUint(ctx, "excludeReservationId")
	if !ok {
		return
	}
	var exclude *uint
	if excludeID != 0 {
		exclude = &excludeID
	}
	available, err := c.availability.IsAvailable(ctx.Request.Context(), id, checkIn, checkOut, exclude)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.AvailabilityResponse{
		AccommodationID: id,
		CheckIn:         checkIn.Format(constants.DateLayout),
		CheckOut:        checkOut.Format(constants.DateLayout),
		Available:       available,
	})
}

func (c *AccommodationController) ListTypes(ctx *gin.Context) {
	items, err := c.types.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(items))
}

func (c *AccommodationController) GetType(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	t, err := c.types.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, t)
}

func (c *AccommodationController) CreateType(ctx *gin.Context) {
	var req dto.AccommodationTypeRequest
	if !bindJSON(ctx, &req) {
		return
	}
	t := &models.AccommodationType{}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	created, err := c.types.Create(ctx.Request.Context(), t)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, created)
}

func (c *AccommodationController) UpdateType(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AccommodationTypeRequest
	if !bindJSON(ctx, &req) {
		return
	}
	t, err := c.types.Update(ctx.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, t)
}

func (c *AccommodationController) DeleteType(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.types.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, err)
		return
	}
	response.Deleted(ctx)
}
