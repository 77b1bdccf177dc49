package importer

import (
	"errors"
	"fmt"
	"io"

	"inventario/internal/equipo"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Engine procesa una importación masiva: resuelve cabeceras, valida
// cada fila de forma independiente, resuelve o crea las referencias,
// aplica la política de duplicados y persiste los equipos válidos.
// Los errores de fila nunca abortan el lote; sólo los errores de
// archivo o de cabeceras son fatales.
type Engine struct {
	db      *gorm.DB
	equipos *equipo.Service
	refs    *ResolutorReferencias
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:      db,
		equipos: equipo.NewService(db),
		refs:    NewResolutorReferencias(db),
	}
}

// Importar lee el workbook completo y devuelve el reporte por filas.
// El error de retorno es no-nil únicamente ante fallas fatales
// (archivo corrupto, hoja vacía, columna requerida ausente).
func (en *Engine) Importar(r io.Reader) (*ReporteImportacion, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("archivo excel inválido: %w", err)
	}
	defer f.Close()

	hoja := f.GetSheetName(0)
	filas, err := f.GetRows(hoja)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer la hoja '%s': %w", hoja, err)
	}
	if len(filas) < 2 {
		return nil, errors.New("el archivo no contiene datos")
	}

	mapeo, err := ResolverCabeceras(filas[0])
	if err != nil {
		return nil, err
	}

	reporte := &ReporteImportacion{Errores: []string{}}

	for i, celdas := range filas[1:] {
		if filaVacia(celdas) {
			continue
		}
		fila := i + 2 // 1-based, desplazado por la fila de cabeceras

		fe, erroresFila := ParseFila(celdas, mapeo, fila)
		reporte.Errores = append(reporte.Errores, erroresFila...)
		if fe == nil {
			continue
		}

		if err := en.procesarFila(fe, reporte); err != nil {
			reporte.Errores = append(reporte.Errores, err.Error())
		}
	}

	return reporte, nil
}

// procesarFila resuelve referencias y persiste una fila ya validada.
// Devuelve el error de fila (con el prefijo "Fila N:") o nil si el
// equipo quedó creado.
func (en *Engine) procesarFila(fe *FilaEquipo, reporte *ReporteImportacion) error {
	area, err := en.refs.ObtenerOCrearArea(fe.AreaNombre)
	if err != nil {
		return fmt.Errorf("Fila %d: %v", fe.Fila, err)
	}

	estado, err := en.refs.ObtenerOCrearEstado(fe.EstadoNombre)
	if err != nil {
		return fmt.Errorf("Fila %d: %v", fe.Fila, err)
	}

	e := &equipo.Equipo{
		Nombre:        fe.Nombre,
		Tipo:          fe.Tipo,
		NumeroSerie:   fe.NumeroSerie,
		Marca:         fe.Marca,
		Modelo:        fe.Modelo,
		Precio:        fe.Precio,
		Proveedor:     fe.Proveedor,
		Observacion:   fe.Observacion,
		FechaCompra:   fe.FechaCompra,
		GarantiaHasta: fe.GarantiaHasta,
		AreaID:        area.ID,
		EstadoID:      estado.ID,
	}

	if fe.SedeNombre != "" {
		sede, err := en.refs.ObtenerOCrearSede(fe.SedeNombre)
		if err != nil {
			return fmt.Errorf("Fila %d: %v", fe.Fila, err)
		}
		e.SedeID = &sede.ID
	}

	// Política de duplicados: mismo nombre (sin distinguir mayúsculas)
	// dentro de la misma área rechaza la fila
	var duplicados int64
	err = en.db.Model(&equipo.Equipo{}).
		Where("LOWER(nombre) = LOWER(?) AND area_id = ?", fe.Nombre, area.ID).
		Count(&duplicados).Error
	if err != nil {
		return fmt.Errorf("Fila %d: Error al verificar duplicados - %v", fe.Fila, err)
	}
	if duplicados > 0 {
		return fmt.Errorf("Fila %d: Ya existe un equipo '%s' en el área '%s'", fe.Fila, fe.Nombre, area.Nombre)
	}

	if err := en.equipos.Crear(e); err != nil {
		switch {
		case errors.Is(err, equipo.ErrSerieDuplicada):
			return fmt.Errorf("Fila %d: El número de serie '%s' ya existe", fe.Fila, fe.NumeroSerie)
		case errors.Is(err, equipo.ErrAreaNoExiste), errors.Is(err, equipo.ErrEstadoNoExiste):
			return fmt.Errorf("Fila %d: Referencia inválida - %v", fe.Fila, err)
		default:
			return fmt.Errorf("Fila %d: Error al crear equipo - %v", fe.Fila, err)
		}
	}

	reporte.EquiposCreados++
	return nil
}
