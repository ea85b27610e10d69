package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

// Err is rendered as {"error": "...", "errors": {"field": "message"}}.
type Err struct {
	Err            error             `json:"-"`
	HTTPStatusCode int               `json:"-"`
	Message        string            `json:"error" example:"mission with ID 7 not found"`
	Fields         map[string]string `json:"errors,omitempty"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.Request.URL.Path),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

// FromError picks the status from the kind of a domain error. Anything else is a 500.
func FromError(err error) *Err {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		return ErrInternalServerError(err)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return newErr(err, http.StatusNotFound, domainErr.Msg)
	case errors.Is(err, domain.ErrConflict):
		return newErr(err, http.StatusConflict, domainErr.Msg)
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrForbidden):
		return newErr(err, http.StatusBadRequest, domainErr.Msg)
	}

	return ErrInternalServerError(err)
}

func ErrBadRequest(err error) *Err {
	return newErr(err, http.StatusBadRequest, err.Error())
}

func ErrInvalidID(param string) *Err {
	return newErr(nil, http.StatusBadRequest, "invalid "+param)
}

func ErrUnauthorized(msg string) *Err {
	return newErr(nil, http.StatusUnauthorized, msg)
}

func ErrTooManyRequests() *Err {
	return newErr(nil, http.StatusTooManyRequests, "too many requests")
}

// ErrValidation renders body decoding and field validation failures as 422. ozzo field errors
// are listed per field.
func ErrValidation(err error) *Err {
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return ErrInternalServerError(err)
	}

	e := newErr(err, http.StatusUnprocessableEntity, "validation failed")

	var fields validation.Errors
	if errors.As(err, &fields) {
		e.Fields = flatten("", fields)
		return e
	}

	e.Message = err.Error()

	return e
}

func ErrInternalServerError(err error) *Err {
	return newErr(err, http.StatusInternalServerError, err.Error())
}

func newErr(err error, status int, msg string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		Message:        msg,
	}
}

// flatten turns nested ozzo errors (e.g. items.0.quantity) into a flat map.
func flatten(prefix string, errs validation.Errors) map[string]string {
	fields := make(map[string]string, len(errs))
	for name, err := range errs {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			for k, v := range flatten(key, nested) {
				fields[k] = v
			}
			continue
		}
		fields[key] = err.Error()
	}

	return fields
}
