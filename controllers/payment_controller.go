package controllers

import (
	"pousada/dto"
	"pousada/errors"
	"pousada/response"
	"pousada/services"
	"pousada/utils"

	"github.com/gin-gonic/gin"
)

const maxReceiptSize = 10 << 20

type PaymentController struct {
	service  *services.PaymentService
	receipts *services.ReceiptService
}

type PaymentControllerOptions struct {
	Payments *services.PaymentService
	Receipts *services.ReceiptService
}

func NewPaymentController(opts PaymentControllerOptions) *PaymentController {
	return &PaymentController{service: opts.Payments, receipts: opts.Receipts}
}

func (c *PaymentController) List(ctx *gin.Context) {
	reservationID, ok := queryUint(ctx, "reservationId")
	if !ok {
		return
	}
	from, err := utils.ParseOptionalDate("from", optionalQuery(ctx, "from"))
	if err != nil {
		fail(ctx, err)
		return
	}
	to, err := utils.ParseOptionalDate("to", optionalQuery(ctx, "to"))
	if err != nil {
		fail(ctx, err)
		return
	}
	items, err := c.service.List(ctx.Request.Context(), services.PaymentFilter{
		ReservationID: reservationID,
		Method:        ctx.Query("method"),
		Status:        ctx.Query("status"),
		From:          from,
		To:            to,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewListResponse(dto.NewPaymentResponses(items)))
}

func (c *PaymentController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	p, err := c.service.Get(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewPaymentResponse(p))
}

func (c *PaymentController) Create(ctx *gin.Context) {
	var req dto.CreatePaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	paidAt, err := utils.ParseDate("paymentDate", req.PaymentDate)
	if err != nil {
		fail(ctx, err)
		return
	}
	p, err := c.service.Record(ctx.Request.Context(), services.RecordPaymentInput{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		PaymentDate:   paidAt,
		Method:        req.Method,
		Status:        req.Status,
		ReceiptURL:    req.ReceiptURL,
		Notes:         req.Notes,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Created(ctx, dto.NewPaymentResponse(p))
}

func (c *PaymentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdatePaymentRequest
	if !bindJSON(ctx, &req) {
		return
	}
	paidAt, err := utils.ParseOptionalDate("paymentDate", req.PaymentDate)
	if err != nil {
		fail(ctx, err)
		return
	}
	p, err := c.service.Update(ctx.Request.Context(), id, services.PaymentPatch{
		Amount:      req.Amount,
		PaymentDate: paidAt,
		Method:      req.Method,
		Status:      req.Status,
		ReceiptURL:  req.ReceiptURL,
		Notes:       req.Notes,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.NewPaymentResponse(p))
}

func (c *PaymentController) Delete(ctx *gin.Context) {
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

// UploadReceipt takes a multipart "file" and stores it against the payment
func (c *PaymentController) UploadReceipt(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		fail(ctx, errors.InvalidArgument("file is required"))
		return
	}
	if file.Size > maxReceiptSize {
		fail(ctx, errors.InvalidArgument("receipt exceeds 10MB"))
		return
	}
	src, err := file.Open()
	if err != nil {
		fail(ctx, errors.InvalidArgument("could not read file"))
		return
	}
	defer src.Close()

	url, err := c.receipts.Attach(ctx.Request.Context(), id, src)
	if err != nil {
		fail(ctx, err)
		return
	}
	response.Success(ctx, dto.ReceiptResponse{PaymentID: id, ReceiptURL: url})
}
