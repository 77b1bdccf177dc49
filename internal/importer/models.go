package importer

import (
	"time"

	"github.com/google/uuid"
)

// aliasCampo asocia un campo canónico del esquema con los fragmentos de
// cabecera que lo identifican. La tabla es declarativa: agregar un alias
// nuevo no requiere tocar el resolutor.
type aliasCampo struct {
	Campo   string
	Aliases []string
}

// Columnas obligatorias del archivo. El orden define el orden de
// asignación cuando una cabecera podría servir a más de un campo.
var columnasRequeridas = []aliasCampo{
	{"nombre", []string{"nombre", "name", "equipo", "equipment"}},
	{"tipo", []string{"tipo", "type", "categoria", "category"}},
	{"area", []string{"area", "área", "departamento", "department"}},
	{"estado", []string{"estado", "status", "condition"}},
}

var columnasOpcionales = []aliasCampo{
	{"marca", []string{"marca", "brand", "fabricante", "manufacturer"}},
	{"modelo", []string{"modelo", "model"}},
	{"precio", []string{"precio", "price", "cost", "costo", "valor", "value"}},
	{"proveedor", []string{"proveedor", "supplier", "vendor"}},
	{"observacion", []string{"observacion", "observación", "descripcion", "descripción", "description", "notes", "notas"}},
	{"fecha_compra", []string{"fecha_compra", "fecha compra", "purchase_date", "date_purchased", "compra"}},
	{"garantia_hasta", []string{"garantia_hasta", "garantía hasta", "warranty_until", "garantia", "garantía"}},
	{"sede", []string{"sede", "site", "sucursal", "ubicacion", "ubicación"}},
	{"numero_serie", []string{"numero_serie", "número de serie", "n serie", "serie", "serial"}},
}

// ReporteImportacion - resultado agregado de una importación masiva.
// La operación se considera exitosa si creó al menos un equipo, aunque
// haya filas con error.
type ReporteImportacion struct {
	EquiposCreados int      `json:"equipos_creados"`
	Errores        []string `json:"errores"`
}

func (r *ReporteImportacion) Exitoso() bool {
	return r.EquiposCreados > 0
}

// ImportArchivo - registro de auditoría por cada importación procesada,
// con la referencia al objeto archivado en el bucket
type ImportArchivo struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Filename       string    `json:"filename" gorm:"size:255;not null"`
	ObjectKey      string    `json:"object_key" gorm:"size:512"`
	EquiposCreados int       `json:"equipos_creados" gorm:"not null"`
	TotalErrores   int       `json:"total_errores" gorm:"not null"`
	UserID         uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}
