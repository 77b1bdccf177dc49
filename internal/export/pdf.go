package export

import (
	"bytes"
	"strconv"
	"time"

	"inventario/internal/equipo"

	"github.com/jung-kurt/gofpdf"
)

// GenerarPDFEquipos arma el reporte PDF del inventario: tabla de
// equipos y resumen de cantidades por estado
func GenerarPDFEquipos(equipos []equipo.Equipo) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Las fuentes core interpretan CP1252, los acentos pasan por el
	// traductor
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 12, "INVENTARIO DE ACTIVOS", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 8, "Reporte generado el "+time.Now().Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	cabeceras := []string{"Nombre", "Tipo", "N° Serie", "Marca/Modelo", "Precio", "Área", "Estado", "Garantía"}
	anchos := []float64{55, 28, 30, 45, 25, 30, 30, 24}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for i, cabecera := range cabeceras {
		pdf.CellFormat(anchos[i], 8, tr(cabecera), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	sombreada := false
	for i := range equipos {
		e := &equipos[i]

		precio := "N/A"
		if e.Precio != nil {
			precio = "$" + e.Precio.StringFixed(2)
		}
		marcaModelo := e.Marca
		if e.Modelo != "" {
			if marcaModelo != "" {
				marcaModelo += " "
			}
			marcaModelo += e.Modelo
		}
		if marcaModelo == "" {
			marcaModelo = "N/A"
		}
		garantia := "N/A"
		if e.GarantiaHasta != nil {
			if e.GarantiaVigente() {
				garantia = "Vigente"
			} else {
				garantia = "Vencida"
			}
		}

		if sombreada {
			pdf.SetFillColor(230, 230, 230)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		sombreada = !sombreada

		pdf.CellFormat(anchos[0], 7, tr(e.Nombre), "1", 0, "L", true, 0, "")
		pdf.CellFormat(anchos[1], 7, tr(e.Tipo), "1", 0, "L", true, 0, "")
		pdf.CellFormat(anchos[2], 7, tr(e.NumeroSerie), "1", 0, "C", true, 0, "")
		pdf.CellFormat(anchos[3], 7, tr(marcaModelo), "1", 0, "L", true, 0, "")
		pdf.CellFormat(anchos[4], 7, precio, "1", 0, "R", true, 0, "")
		pdf.CellFormat(anchos[5], 7, tr(e.Area.Nombre), "1", 0, "L", true, 0, "")
		pdf.CellFormat(anchos[6], 7, tr(e.Estado.Nombre), "1", 0, "C", true, 0, "")
		pdf.CellFormat(anchos[7], 7, garantia, "1", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}

	// Resumen por estado
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(0, 102, 51)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(90, 9, tr("Estadísticas del Inventario"), "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 8, "Estado", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Cantidad", "1", 1, "C", true, 0, "")

	conteos := map[string]int{}
	var orden []string
	for i := range equipos {
		nombre := equipos[i].Estado.Nombre
		if _, visto := conteos[nombre]; !visto {
			orden = append(orden, nombre)
		}
		conteos[nombre]++
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, nombre := range orden {
		pdf.SetFillColor(255, 255, 255)
		pdf.CellFormat(60, 7, tr(nombre), "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 7, strconv.Itoa(conteos[nombre]), "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
