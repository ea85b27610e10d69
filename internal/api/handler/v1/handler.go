package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/api/handler/v1/response"
)

type validatable interface {
	Validate() error
}

// bindJSON decodes and validates the body. On failure the 422 response is already written.
func bindJSON(ctx *gin.Context, req validatable) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrValidation(err))
		return false
	}

	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be omitted.
func bindOptionalJSON(ctx *gin.Context, req validatable) bool {
	if ctx.Request.ContentLength == 0 {
		return true
	}

	return bindJSON(ctx, req)
}

func pathID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrInvalidID(param))
		return 0, false
	}

	return uint(id), true
}

func queryUint(ctx *gin.Context, key string) (*uint, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s must be a positive integer", key)
	}
	id := uint(v)

	return &id, nil
}

func queryBool(ctx *gin.Context, key string) (*bool, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s must be true or false", key)
	}

	return &v, nil
}

// queryEnum reads an optional enum parameter. valid reports whether the value is allowed.
func queryEnum[T ~string](ctx *gin.Context, key string, valid func(T) bool) (*T, error) {
	raw, ok := ctx.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}

	v := T(raw)
	if !valid(v) {
		return nil, fmt.Errorf("invalid %s %q", key, raw)
	}

	return &v, nil
}

func renderServiceErr(ctx *gin.Context, handler, call string, err error) {
	response.RenderErr(ctx, response.FromError(fmt.Errorf("%s -> %s -> %w", handler, call, err)))
}
