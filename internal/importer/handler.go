package importer

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"

	"inventario/internal/archive"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Límite de tamaño del archivo subido; la importación es un solo pase
// en memoria
const maxTamanoArchivo = 10 << 20 // 10 MB

type Handler struct {
	db      *gorm.DB
	engine  *Engine
	archivo *archive.Service
}

func NewHandler(db *gorm.DB, archivo *archive.Service) *Handler {
	return &Handler{
		db:      db,
		engine:  NewEngine(db),
		archivo: archivo,
	}
}

// POST /api/v1/equipos/importar
func (h *Handler) Importar(c *gin.Context) {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se ha seleccionado ningún archivo",
		})
		return
	}
	if fileHeader.Size > maxTamanoArchivo {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "El archivo supera el tamaño máximo permitido",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No se pudo leer el archivo"})
		return
	}
	defer f.Close()

	datos, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No se pudo leer el archivo"})
		return
	}

	reporte, err := h.engine.Importar(bytes.NewReader(datos))
	if err != nil {
		// Error fatal: archivo corrupto o cabeceras inválidas
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	objectKey := h.archivarYRegistrar(c, fileHeader.Filename, datos, reporte)

	if !reporte.Exitoso() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se pudo importar ningún equipo. Verifica el formato del archivo.",
			"errores": reporte.Errores,
		})
		return
	}

	mensaje := fmt.Sprintf("Se importaron %d equipos exitosamente", reporte.EquiposCreados)
	if len(reporte.Errores) > 0 {
		mensaje += fmt.Sprintf(". Se encontraron %d errores", len(reporte.Errores))
	}

	respuesta := gin.H{
		"success":         true,
		"message":         mensaje,
		"equipos_creados": reporte.EquiposCreados,
		"errores":         reporte.Errores,
	}
	if objectKey != "" {
		respuesta["archivo_auditado"] = objectKey
	}
	c.JSON(http.StatusOK, respuesta)
}

// archivarYRegistrar sube el archivo original al bucket de auditoría y
// deja el registro de la importación. Cualquier falla acá se loguea y
// no afecta el resultado del import.
func (h *Handler) archivarYRegistrar(c *gin.Context, filename string, datos []byte, reporte *ReporteImportacion) string {
	objectKey, err := h.archivo.ArchivarImportacion(c.Request.Context(), filename, datos)
	if err != nil {
		log.Printf("No se pudo archivar el archivo de importación %s: %v", filename, err)
		objectKey = ""
	}

	registro := ImportArchivo{
		ID:             uuid.New(),
		Filename:       filename,
		ObjectKey:      objectKey,
		EquiposCreados: reporte.EquiposCreados,
		TotalErrores:   len(reporte.Errores),
	}
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(uuid.UUID); ok {
			registro.UserID = id
		}
	}
	if err := h.db.Create(&registro).Error; err != nil {
		log.Printf("No se pudo registrar la importación %s: %v", filename, err)
	}

	return objectKey
}

// GET /api/v1/equipos/importaciones
func (h *Handler) ListarImportaciones(c *gin.Context) {
	var registros []ImportArchivo
	err := h.db.Order("created_at DESC").Limit(100).Find(&registros).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"importaciones": registros,
		"total":         len(registros),
	})
}
