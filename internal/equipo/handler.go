package equipo

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// EquipoRequest - cuerpo JSON del alta/edición manual. Las fechas vienen
// como YYYY-MM-DD y las referencias como UUID de catálogo.
type EquipoRequest struct {
	Nombre             string `json:"nombre" binding:"required"`
	Tipo               string `json:"tipo" binding:"required"`
	NumeroSerie        string `json:"numero_serie"`
	Marca              string `json:"marca"`
	Modelo             string `json:"modelo"`
	Precio             string `json:"precio"`
	Proveedor          string `json:"proveedor"`
	Observacion        string `json:"observacion"`
	FechaCompra        string `json:"fecha_compra"`
	GarantiaHasta      string `json:"garantia_hasta"`
	FechaMantenimiento string `json:"fecha_mantenimiento"`
	VidaUtil           *int   `json:"vida_util"`
	Sede               string `json:"sede"`
	Area               string `json:"area" binding:"required"`
	Estado             string `json:"estado" binding:"required"`
}

func (r *EquipoRequest) toEquipo() (*Equipo, error) {
	areaID, err := uuid.Parse(r.Area)
	if err != nil {
		return nil, ErrAreaNoExiste
	}
	estadoID, err := uuid.Parse(r.Estado)
	if err != nil {
		return nil, ErrEstadoNoExiste
	}

	e := &Equipo{
		Nombre:      strings.TrimSpace(r.Nombre),
		Tipo:        strings.TrimSpace(r.Tipo),
		NumeroSerie: strings.TrimSpace(r.NumeroSerie),
		Marca:       strings.TrimSpace(r.Marca),
		Modelo:      strings.TrimSpace(r.Modelo),
		Proveedor:   strings.TrimSpace(r.Proveedor),
		Observacion: strings.TrimSpace(r.Observacion),
		VidaUtil:    r.VidaUtil,
		AreaID:      areaID,
		EstadoID:    estadoID,
	}

	if r.Sede != "" {
		sedeID, err := uuid.Parse(r.Sede)
		if err != nil {
			return nil, ErrSedeNoExiste
		}
		e.SedeID = &sedeID
	}

	// Un precio vacío se guarda como nulo; uno mal formado rechaza el
	// alta, igual que en la importación masiva
	if p := strings.TrimSpace(r.Precio); p != "" {
		precio, err := decimal.NewFromString(p)
		if err != nil {
			return nil, fmt.Errorf("Precio inválido '%s'", p)
		}
		e.Precio = &precio
	}

	e.FechaCompra = parseFechaISO(r.FechaCompra)
	e.GarantiaHasta = parseFechaISO(r.GarantiaHasta)
	e.FechaMantenimiento = parseFechaISO(r.FechaMantenimiento)

	return e, nil
}

func parseFechaISO(valor string) *time.Time {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", valor); err == nil {
		return &t
	}
	return nil
}

func equipoJSON(e *Equipo) gin.H {
	data := gin.H{
		"id":                    e.ID,
		"nombre":                e.Nombre,
		"tipo":                  e.Tipo,
		"numero_serie":          e.NumeroSerie,
		"marca":                 e.Marca,
		"modelo":                e.Modelo,
		"proveedor":             e.Proveedor,
		"observacion":           e.Observacion,
		"area":                  e.Area.Nombre,
		"area_id":               e.AreaID,
		"estado":                e.Estado.Nombre,
		"estado_id":             e.EstadoID,
		"fecha_registro":        e.FechaRegistro.Format("2006-01-02"),
		"garantia_vigente":      e.GarantiaVigente(),
		"mantenimiento_proximo": e.MantenimientoProximo(),
		"mantenimiento_vencido": e.MantenimientoVencido(),
	}
	if e.Precio != nil {
		data["precio"] = e.Precio.StringFixed(2)
	}
	if e.FechaCompra != nil {
		data["fecha_compra"] = e.FechaCompra.Format("2006-01-02")
	}
	if e.GarantiaHasta != nil {
		data["garantia_hasta"] = e.GarantiaHasta.Format("2006-01-02")
	}
	if e.FechaMantenimiento != nil {
		data["fecha_mantenimiento"] = e.FechaMantenimiento.Format("2006-01-02")
	}
	if e.VidaUtil != nil {
		data["vida_util"] = *e.VidaUtil
	}
	if e.Sede != nil {
		data["sede"] = e.Sede.Nombre
		data["sede_id"] = e.SedeID
	}
	return data
}

// GET /api/v1/equipos
func (h *Handler) Listar(c *gin.Context) {
	equipos, err := h.service.Listar()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch equipos", "details": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(equipos))
	for i := range equipos {
		items = append(items, equipoJSON(&equipos[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"equipos": items,
		"total":   len(items),
	})
}

// GET /api/v1/equipos/:id
func (h *Handler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de equipo inválido"})
		return
	}

	e, err := h.service.ObtenerPorID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Equipo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "equipo": equipoJSON(e)})
}

// POST /api/v1/equipos
func (h *Handler) Crear(c *gin.Context) {
	var req EquipoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos JSON inválidos: " + err.Error()})
		return
	}

	e, err := req.toEquipo()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.service.Crear(e); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrAreaNoExiste) || errors.Is(err, ErrEstadoNoExiste) ||
			errors.Is(err, ErrSedeNoExiste) || errors.Is(err, ErrSerieDuplicada) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	creado, err := h.service.ObtenerPorID(e.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Equipo creado exitosamente",
		"equipo":  equipoJSON(creado),
	})
}

// PUT /api/v1/equipos/:id
func (h *Handler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de equipo inválido"})
		return
	}

	var req EquipoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos JSON inválidos: " + err.Error()})
		return
	}

	cambios, err := req.toEquipo()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	actualizado, err := h.service.Actualizar(id, cambios)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Equipo no encontrado"})
		case errors.Is(err, ErrAreaNoExiste), errors.Is(err, ErrEstadoNoExiste),
			errors.Is(err, ErrSedeNoExiste), errors.Is(err, ErrSerieDuplicada):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Equipo actualizado exitosamente",
		"equipo":  equipoJSON(actualizado),
	})
}

// DELETE /api/v1/equipos/:id
func (h *Handler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de equipo inválido"})
		return
	}

	e, err := h.service.Eliminar(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Equipo no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Equipo \"" + e.Nombre + "\" (" + e.NumeroSerie + ") eliminado exitosamente",
	})
}

// GET /api/v1/catalogos
func (h *Handler) Catalogos(c *gin.Context) {
	sedes, err := h.service.ListarSedes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	areas, err := h.service.ListarAreas()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	estados, err := h.service.ListarEstados()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"sedes":   sedes,
		"areas":   areas,
		"estados": estados,
	})
}
