package controllers

import (
	"pousada/dto"
	"pousada/response"
	"pousada/services"
	"pousada/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	service *services.ReservationService
	addons  *services.ReservationAddonService
}

type ReservationControllerOptions struct {
	Reservations *services.ReservationService
	Addons       *services.ReservationAddonService
}

func NewReservationController(opts ReservationControllerOptions) *ReservationController {
	return &ReservationController{service: opts.Reservations, addons: opts.Addons}
}

func (c *ReservationController) filter(ctx *gin.Context) (services.ReservationFilter, bool) {
	var f services.ReservationFilter
	var ok bool
	if f.EstablishmentID, ok = queryUint(ctx, "establishmentId"); !ok {
		return f, false
	}
	if f.ClientID, ok = queryUint(ctx, "clientId"); !ok {
		return f, false
	}
	if f.AccommodationID, ok = queryUint(ctx, "accommodationId"); !ok {
		return f, false
	}
	from, err := utils.ParseOptionalDate("checkInFrom", optionalQuery(ctx, "checkInFrom"))
	if err != nil {
		fail(ctx, err)
		return f, false
	}
	to, err := utils.ParseOptionalDate("checkOutTo", optionalQuery(ctx, "checkOutTo"))
	if err != nil {
		fail(ctx, err)
		return f, false
	}
	f.CheckInFrom = from
	f.CheckOutTo = to
	f.Status = ctx.Query("status")
	f.Search = ctx.Query("search")
	return f, true
}

func (c *ReservationController) List(ctx *gin.Context) {
	f, ok := c.filter(ctx)
	if !ok {
		return
	}
	items, err := c.service.List(ctx.Request.Context(), f)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(dto.NewReservationResponses(items)))
}

func (c *ReservationController) History(ctx *gin.Context) {
	f, ok := c.filter(ctx)
	if !ok {
		return
	}
	items, err := c.service.History(ctx.Request.Context(), f)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(dto.NewReservationResponses(items)))
}

func (c *ReservationController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	r, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewReservationResponse(r))
}

func (c *ReservationController) Create(ctx *gin.Context) {
	var req dto.CreateReservationRequest
	if !bindJSON(ctx, &req) {
		return
	}
	checkIn, err := utils.ParseDate("checkIn", req.CheckIn)
	if err != nil {
		fail(ctx, err)
		return
	}
	checkOut, err := utils.ParseDate("checkOut", req.CheckOut)
	if err != nil {
		fail(ctx, err)
		return
	}
	r, err := c.service.Create(ctx.Request.Context(), services.CreateReservationInput{
		ClientID:        req.ClientID,
		AccommodationID: req.AccommodationID,
		EstablishmentID: req.EstablishmentID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Headcount:       req.Headcount,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, dto.NewReservationResponse(r))
}

func (c *ReservationController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateReservationRequest
	if !bindJSON(ctx, &req) {
		return
	}
	checkIn, err := utils.ParseOptionalDate("checkIn", req.CheckIn)
	if err != nil {
		fail(ctx, err)
		return
	}
	checkOut, err := utils.ParseOptionalDate("checkOut", req.CheckOut)
	if err != nil {
		fail(ctx, err)
		return
	}
	r, err := c.service.Update(ctx.Request.Context(), id, services.ReservationPatch{
		AccommodationID: req.AccommodationID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Headcount:       req.Headcount,
		TotalValue:      req.TotalValue,
		PaidValue:       req.PaidValue,
		Status:          req.Status,
		Notes:           req.Notes,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewReservationResponse(r))
}

func (c *ReservationController) Delete(ctx *gin.Context) {
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

func (c *ReservationController) ListAddons(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	lines, err := c.addons.List(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	out := make([]dto.ReservationAddonResponse, len(lines))
	for i := range lines {
		out[i] = dto.NewReservationAddonResponse(&lines[i])
	}
	response.Success(ctx, dto.NewListResponse(out))
}

func (c *ReservationController) AddAddon(ctx *gin.Context) {
	id, addonID, quantity, ok := c.addonParams(ctx)
	if !ok {
		return
	}
	line, err := c.addons.Add(ctx.Request.Context(), id, addonID, quantity)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, dto.NewReservationAddonResponse(line))
}

func (c *ReservationController) UpdateAddon(ctx *gin.Context) {
	id, addonID, quantity, ok := c.addonParams(ctx)
	if !ok {
		return
	}
	line, err := c.addons.UpdateQuantity(ctx.Request.Context(), id, addonID, quantity)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewReservationAddonResponse(line))
}

func (c *ReservationController) RemoveAddon(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	addonID, ok := parseID(ctx, "addonId")
	if !ok {
		return
	}
	if err := c.addons.Remove(ctx.Request.Context(), id, addonID); err != nil {
		fail(ctx, err)
		return
	}
	response.Deleted(ctx)
}

// addonParams reads both path ids and the optional quantity body
func (c *ReservationController) addonParams(ctx *gin.Context) (uint, uint, int, bool) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return 0, 0, 0, false
	}
	addonID, ok := parseID(ctx, "addonId")
	if !ok {
		return 0, 0, 0, false
	}
	var req dto.ReservationAddonRequest
	if ctx.Request.ContentLength != 0 && !bindJSON(ctx, &req) {
		return 0, 0, 0, false
	}
	return id, addonID, req.Quantity, true
}

func optionalQuery(ctx *gin.Context, name string) *string {
	v, ok := ctx.GetQuery(name)
	if !ok {
		return nil
	}
	return &v
}
