package export

import (
	"net/http"

	"inventario/internal/equipo"

	"github.com/gin-gonic/gin"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	equipos *equipo.Service
}

func NewHandler(equipos *equipo.Service) *Handler {
	return &Handler{equipos: equipos}
}

// GET /api/v1/equipos/exportar/excel
func (h *Handler) ExportarExcel(c *gin.Context) {
	equipos, err := h.equipos.ListarOrdenadoPorSerie()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al generar Excel: " + err.Error()})
		return
	}

	contenido, err := GenerarExcelEquipos(equipos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al generar Excel: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inventario_activos.xlsx"`)
	c.Data(http.StatusOK, contentTypeXLSX, contenido)
}

// GET /api/v1/equipos/exportar/pdf
func (h *Handler) ExportarPDF(c *gin.Context) {
	equipos, err := h.equipos.ListarOrdenadoPorSerie()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al generar PDF: " + err.Error()})
		return
	}

	contenido, err := GenerarPDFEquipos(equipos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al generar PDF: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="inventario_activos.pdf"`)
	c.Data(http.StatusOK, contentTypePDF, contenido)
}

// GET /api/v1/equipos/plantilla
func (h *Handler) DescargarPlantilla(c *gin.Context) {
	contenido, err := GenerarPlantillaExcel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al generar plantilla: " + err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="plantilla_importacion_equipos.xlsx"`)
	c.Data(http.StatusOK, contentTypeXLSX, contenido)
}
