package export

import (
	"bytes"
	"fmt"
	"time"

	"inventario/internal/equipo"

	"github.com/xuri/excelize/v2"
)

var cabecerasExport = []string{
	"Nombre", "Tipo", "N° Serie", "Marca", "Modelo", "Precio",
	"Proveedor", "Fecha Compra", "Garantía Hasta", "Sede", "Área", "Estado", "Observación",
}

var cabecerasPlantilla = []string{
	"Nombre*", "Tipo*", "N° Serie", "Marca", "Modelo", "Precio",
	"Proveedor", "Fecha Compra (DD/MM/YYYY)", "Garantía Hasta (DD/MM/YYYY)",
	"Sede", "Área*", "Estado*", "Observación",
}

// GenerarExcelEquipos arma el reporte xlsx del inventario: hoja
// principal con el listado y una segunda hoja de estadísticas por estado
func GenerarExcelEquipos(equipos []equipo.Equipo) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	hoja := "Inventario de Activos"
	f.SetSheetName("Sheet1", hoja)

	estiloTitulo, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "366092"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	estiloCabecera, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	f.MergeCell(hoja, "A1", "M1")
	f.SetCellValue(hoja, "A1", "INVENTARIO DE ACTIVOS")
	f.SetCellStyle(hoja, "A1", "A1", estiloTitulo)

	f.MergeCell(hoja, "A2", "M2")
	f.SetCellValue(hoja, "A2", "Reporte generado el "+time.Now().Format("02/01/2006 15:04"))

	for col, cabecera := range cabecerasExport {
		celda, _ := excelize.CoordinatesToCellName(col+1, 4)
		f.SetCellValue(hoja, celda, cabecera)
		f.SetCellStyle(hoja, celda, celda, estiloCabecera)
	}

	for i := range equipos {
		e := &equipos[i]

		precio := ""
		if e.Precio != nil {
			precio = "$" + e.Precio.StringFixed(2)
		}
		sede := ""
		if e.Sede != nil {
			sede = e.Sede.Nombre
		}

		valores := []interface{}{
			e.Nombre, e.Tipo, e.NumeroSerie, e.Marca, e.Modelo, precio,
			e.Proveedor, formatearFecha(e.FechaCompra), formatearFecha(e.GarantiaHasta),
			sede, e.Area.Nombre, e.Estado.Nombre, e.Observacion,
		}
		for col, valor := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, i+5)
			f.SetCellValue(hoja, celda, valor)
		}
	}

	anchos := []float64{25, 15, 15, 15, 15, 12, 20, 12, 12, 15, 15, 15, 30}
	for col, ancho := range anchos {
		letra, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(hoja, letra, letra, ancho)
	}

	if err := agregarHojaEstadisticas(f, equipos, estiloCabecera); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func agregarHojaEstadisticas(f *excelize.File, equipos []equipo.Equipo, estiloCabecera int) error {
	hoja := "Estadísticas"
	if _, err := f.NewSheet(hoja); err != nil {
		return err
	}

	f.SetCellValue(hoja, "A1", "Estadísticas del Inventario")

	f.SetCellValue(hoja, "A3", "Estado")
	f.SetCellValue(hoja, "B3", "Cantidad")
	f.SetCellStyle(hoja, "A3", "B3", estiloCabecera)

	// Conteo por estado preservando el orden de aparición
	conteos := map[string]int{}
	var orden []string
	for i := range equipos {
		nombre := equipos[i].Estado.Nombre
		if _, visto := conteos[nombre]; !visto {
			orden = append(orden, nombre)
		}
		conteos[nombre]++
	}

	fila := 4
	for _, nombre := range orden {
		f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), nombre)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), conteos[nombre])
		fila++
	}

	f.SetColWidth(hoja, "A", "A", 20)
	f.SetColWidth(hoja, "B", "B", 10)
	return nil
}

// GenerarPlantillaExcel produce la plantilla de importación con las
// cabeceras esperadas y una fila de ejemplo
func GenerarPlantillaExcel() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	hoja := "Plantilla Importación"
	f.SetSheetName("Sheet1", hoja)

	estiloCabecera, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"366092"}},
	})
	if err != nil {
		return nil, err
	}

	for col, cabecera := range cabecerasPlantilla {
		celda, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(hoja, celda, cabecera)
		f.SetCellStyle(hoja, celda, celda, estiloCabecera)
	}

	ejemplo := []interface{}{
		"Computadora Dell", "Computadora", "COM-00001", "Dell", "OptiPlex 7090", "1200.00",
		"Dell Technologies", "15/01/2023", "15/01/2026", "Planta Central", "Administración",
		"Operativo", "Equipo principal",
	}
	for col, valor := range ejemplo {
		celda, _ := excelize.CoordinatesToCellName(col+1, 2)
		f.SetCellValue(hoja, celda, valor)
	}

	anchos := []float64{25, 15, 15, 15, 15, 12, 20, 25, 25, 15, 15, 15, 30}
	for col, ancho := range anchos {
		letra, _ := excelize.ColumnNumberToName(col + 1)
		f.SetColWidth(hoja, letra, letra, ancho)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatearFecha(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
