package equipo

import (
	"math"
	"time"

	"inventario/internal/common"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sede - ubicación física de primer nivel (planta, oficina, sucursal)
type Sede struct {
	common.BaseModel
	Nombre      string `json:"nombre" gorm:"uniqueIndex;not null;size:100"`
	Direccion   string `json:"direccion" gorm:"type:text"`
	Descripcion string `json:"descripcion" gorm:"type:text"`
}

// Area - agrupación funcional/departamental, independiente de la sede
type Area struct {
	common.BaseModel
	Nombre      string `json:"nombre" gorm:"uniqueIndex;not null;size:100"`
	Descripcion string `json:"descripcion" gorm:"type:text"`
}

// Estado - condición operativa de un equipo (Operativo, En Reparación, ...)
type Estado struct {
	common.BaseModel
	Nombre      string `json:"nombre" gorm:"uniqueIndex;not null;size:50"`
	Descripcion string `json:"descripcion" gorm:"type:text"`
}

// Equipo - activo físico registrado en el inventario.
//
// NumeroSerie es el código de seguimiento generado por el sistema
// (prefijo de 3 letras + contador de 5 dígitos), no el serial del
// fabricante. Area y Estado son obligatorios, Sede es opcional.
type Equipo struct {
	common.BaseModel
	Nombre      string           `json:"nombre" gorm:"not null;size:100"`
	Tipo        string           `json:"tipo" gorm:"not null;size:50"`
	NumeroSerie string           `json:"numero_serie" gorm:"uniqueIndex;not null;size:20"`
	Observacion string           `json:"observacion" gorm:"type:text"`
	Marca       string           `json:"marca" gorm:"size:100"`
	Modelo      string           `json:"modelo" gorm:"size:100"`
	Precio      *decimal.Decimal `json:"precio,omitempty" gorm:"type:decimal(10,2)"`
	Proveedor   string           `json:"proveedor" gorm:"size:200"`
	FechaCompra *time.Time       `json:"fecha_compra,omitempty" gorm:"type:date"`

	GarantiaHasta      *time.Time `json:"garantia_hasta,omitempty" gorm:"type:date"`
	FechaMantenimiento *time.Time `json:"fecha_mantenimiento,omitempty" gorm:"type:date"`
	VidaUtil           *int       `json:"vida_util,omitempty"`

	SedeID   *uuid.UUID `json:"sede_id,omitempty" gorm:"type:uuid;index"`
	AreaID   uuid.UUID  `json:"area_id" gorm:"type:uuid;not null;index"`
	EstadoID uuid.UUID  `json:"estado_id" gorm:"type:uuid;not null;index"`

	// FechaRegistro se fija una sola vez al insertar y nunca se actualiza
	FechaRegistro time.Time `json:"fecha_registro" gorm:"type:date;<-:create"`

	Sede   *Sede  `json:"sede,omitempty" gorm:"foreignKey:SedeID"`
	Area   Area   `json:"area,omitempty" gorm:"foreignKey:AreaID"`
	Estado Estado `json:"estado,omitempty" gorm:"foreignKey:EstadoID"`
}

// GarantiaVigente - true si la garantía cubre la fecha actual
func (e *Equipo) GarantiaVigente() bool {
	return e.garantiaVigenteEn(time.Now())
}

func (e *Equipo) garantiaVigenteEn(hoy time.Time) bool {
	if e.GarantiaHasta == nil {
		return false
	}
	y, m, d := hoy.Date()
	inicio := time.Date(y, m, d, 0, 0, 0, 0, hoy.Location())
	return !e.GarantiaHasta.Before(inicio)
}

// MantenimientoProximo - true si el mantenimiento cae en los próximos 30 días
func (e *Equipo) MantenimientoProximo() bool {
	return e.mantenimientoProximoEn(time.Now())
}

func (e *Equipo) mantenimientoProximoEn(hoy time.Time) bool {
	if e.FechaMantenimiento == nil {
		return false
	}
	dias := diasDeDiferencia(*e.FechaMantenimiento, hoy)
	return dias >= 0 && dias <= 30
}

// MantenimientoVencido - true si la fecha de mantenimiento ya pasó
func (e *Equipo) MantenimientoVencido() bool {
	return e.mantenimientoVencidoEn(time.Now())
}

func (e *Equipo) mantenimientoVencidoEn(hoy time.Time) bool {
	if e.FechaMantenimiento == nil {
		return false
	}
	return diasDeDiferencia(*e.FechaMantenimiento, hoy) < 0
}

// diasDeDiferencia compara a nivel de día calendario: la hora del día no
// influye, el mantenimiento de hoy no está vencido
func diasDeDiferencia(fecha, hoy time.Time) int {
	y, m, d := hoy.Date()
	inicio := time.Date(y, m, d, 0, 0, 0, 0, hoy.Location())
	y, m, d = fecha.Date()
	objetivo := time.Date(y, m, d, 0, 0, 0, 0, hoy.Location())
	return int(math.Round(objetivo.Sub(inicio).Hours() / 24))
}
