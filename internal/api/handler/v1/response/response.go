package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Data is the envelope of every successful response with a body.
type Data struct {
	Data any `json:"data"`
}

func Render(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, Data{Data: data})
}

func OK(ctx *gin.Context, data any) {
	Render(ctx, http.StatusOK, data)
}

func Created(ctx *gin.Context, data any) {
	Render(ctx, http.StatusCreated, data)
}

func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

type Healthcheck struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type Status struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
