package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdex/firmdex-api/internal/dashboard"
)

type DashboardHandler struct {
	reader dashboard.Reader
}

func NewDashboardHandler(r dashboard.Reader) *DashboardHandler {
	return &DashboardHandler{reader: r}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/home", h.Overview)
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.reader.Overview(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
