package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"inventario/internal/equipo"
)

const (
	cacheKey = "dashboard:resumen"
	cacheTTL = 5 * time.Minute
)

var coloresEstado = map[string]string{
	"Operativo":         "success",
	"Bueno":             "success",
	"Nuevo":             "info",
	"Regular":           "warning",
	"Mantenimiento":     "warning",
	"En Reparación":     "warning",
	"Malo":              "danger",
	"Inoperativo":       "danger",
	"Fuera de Servicio": "danger",
	"Dado de Baja":      "secondary",
	"En Almacén":        "info",
}

var iconosEstado = map[string]string{
	"Operativo":         "fa-check-circle",
	"Bueno":             "fa-check-circle",
	"Nuevo":             "fa-star",
	"Regular":           "fa-exclamation-triangle",
	"Mantenimiento":     "fa-tools",
	"En Reparación":     "fa-wrench",
	"Malo":              "fa-times-circle",
	"Inoperativo":       "fa-times-circle",
	"Fuera de Servicio": "fa-ban",
	"Dado de Baja":      "fa-trash",
	"En Almacén":        "fa-box",
}

type TotalPorEstado struct {
	Nombre string `json:"nombre"`
	Total  int64  `json:"total"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}

type AreaResumen struct {
	Nombre       string `json:"nombre"`
	TotalEquipos int64  `json:"total_equipos"`
}

type Resumen struct {
	TotalPorEstado []TotalPorEstado `json:"total_por_estado"`
	Areas          []AreaResumen    `json:"areas"`
	TotalEquipos   int64            `json:"total_equipos"`
}

type Service struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewService(db *gorm.DB, redisClient *redis.Client) *Service {
	return &Service{db: db, redis: redisClient}
}

func colorEstado(nombre string) string {
	if color, ok := coloresEstado[nombre]; ok {
		return color
	}
	return "primary"
}

func iconoEstado(nombre string) string {
	if icono, ok := iconosEstado[nombre]; ok {
		return icono
	}
	return "fa-question-circle"
}

// ObtenerResumen arma los totales del dashboard. El resultado se cachea
// en Redis 5 minutos; sin Redis cada request consulta la base.
func (s *Service) ObtenerResumen(ctx context.Context) (*Resumen, error) {
	if s.redis != nil {
		if datos, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var resumen Resumen
			if json.Unmarshal(datos, &resumen) == nil {
				return &resumen, nil
			}
		}
	}

	resumen, err := s.calcularResumen()
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if datos, err := json.Marshal(resumen); err == nil {
			if err := s.redis.Set(ctx, cacheKey, datos, cacheTTL).Err(); err != nil {
				log.Printf("No se pudo cachear el resumen del dashboard: %v", err)
			}
		}
	}

	return resumen, nil
}

// InvalidarCache elimina el resumen cacheado tras cambios en el inventario
func (s *Service) InvalidarCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
		log.Printf("No se pudo invalidar el cache del dashboard: %v", err)
	}
}

func (s *Service) calcularResumen() (*Resumen, error) {
	var estados []equipo.Estado
	if err := s.db.Order("nombre ASC").Find(&estados).Error; err != nil {
		return nil, err
	}

	resumen := &Resumen{
		TotalPorEstado: make([]TotalPorEstado, 0, len(estados)),
		Areas:          []AreaResumen{},
	}

	for i := range estados {
		var total int64
		err := s.db.Model(&equipo.Equipo{}).Where("estado_id = ?", estados[i].ID).Count(&total).Error
		if err != nil {
			return nil, err
		}
		resumen.TotalPorEstado = append(resumen.TotalPorEstado, TotalPorEstado{
			Nombre: estados[i].Nombre,
			Total:  total,
			Color:  colorEstado(estados[i].Nombre),
			Icon:   iconoEstado(estados[i].Nombre),
		})
	}

	// Top 5 áreas por cantidad de equipos
	err := s.db.Model(&equipo.Area{}).
		Select("areas.nombre, COUNT(equipos.id) AS total_equipos").
		Joins("LEFT JOIN equipos ON equipos.area_id = areas.id").
		Group("areas.id, areas.nombre").
		Order("total_equipos DESC").
		Limit(5).
		Scan(&resumen.Areas).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&equipo.Equipo{}).Count(&resumen.TotalEquipos).Error
	if err != nil {
		return nil, err
	}

	return resumen, nil
}
