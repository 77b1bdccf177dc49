package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GET /api/v1/dashboard
func (h *Handler) Resumen(c *gin.Context) {
	resumen, err := h.service.ObtenerResumen(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al calcular el resumen: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"total_por_estado": resumen.TotalPorEstado,
		"areas":            resumen.Areas,
		"total_equipos":    resumen.TotalEquipos,
	})
}
