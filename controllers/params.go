package controllers

import (
	"strconv"
	"strings"

	"pousada/errors"

	"github.com/gin-gonic/gin"
)

// fail attaches err for middleware.ErrorHandler to render
func fail(ctx *gin.Context, err error) {
	_ = ctx.Error(err)
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		fail(ctx, errors.InvalidArgument("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func queryUint(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		fail(ctx, errors.InvalidArgument("invalid "+name))
		return 0, false
	}
	return uint(v), true
}

func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		fail(ctx, errors.NewAppError(errors.ErrCodeInvalidArgument, "invalid request body", err))
		return false
	}
	return true
}
