package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"inventario/internal/equipo"
)

func equiposDeEjemplo() []equipo.Equipo {
	precio := decimal.RequireFromString("1200.00")
	compra := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	operativo := equipo.Estado{Nombre: "Operativo"}
	reparacion := equipo.Estado{Nombre: "En Reparación"}
	area := equipo.Area{Nombre: "Administración"}

	return []equipo.Equipo{
		{
			Nombre: "Computadora Dell", Tipo: "Computadora", NumeroSerie: "COM-00001",
			Marca: "Dell", Modelo: "OptiPlex 7090", Precio: &precio,
			FechaCompra: &compra, Area: area, Estado: operativo,
		},
		{
			Nombre: "Impresora HP", Tipo: "Impresora", NumeroSerie: "IMP-00001",
			Area: area, Estado: operativo,
		},
		{
			Nombre: "Servidor Web", Tipo: "Servidor", NumeroSerie: "SER-00001",
			Area: area, Estado: reparacion,
		},
	}
}

func TestGenerarExcelEquipos(t *testing.T) {
	contenido, err := GenerarExcelEquipos(equiposDeEjemplo())
	require.NoError(t, err)
	require.NotEmpty(t, contenido)

	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	require.NoError(t, err)
	defer f.Close()

	hoja := "Inventario de Activos"

	titulo, err := f.GetCellValue(hoja, "A1")
	require.NoError(t, err)
	assert.Equal(t, "INVENTARIO DE ACTIVOS", titulo)

	nombre, err := f.GetCellValue(hoja, "A5")
	require.NoError(t, err)
	assert.Equal(t, "Computadora Dell", nombre)

	precio, err := f.GetCellValue(hoja, "F5")
	require.NoError(t, err)
	assert.Equal(t, "$1200.00", precio)

	// Hoja de estadísticas con conteos por estado
	estado, err := f.GetCellValue("Estadísticas", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Operativo", estado)

	cantidad, err := f.GetCellValue("Estadísticas", "B4")
	require.NoError(t, err)
	assert.Equal(t, "2", cantidad)
}

func TestGenerarPlantillaExcel(t *testing.T) {
	contenido, err := GenerarPlantillaExcel()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(contenido))
	require.NoError(t, err)
	defer f.Close()

	hoja := "Plantilla Importación"

	filas, err := f.GetRows(hoja)
	require.NoError(t, err)
	require.Len(t, filas, 2)

	assert.Equal(t, "Nombre*", filas[0][0])
	assert.Equal(t, "Estado*", filas[0][11])
	assert.Equal(t, "Computadora Dell", filas[1][0])
}

func TestGenerarPDFEquipos(t *testing.T) {
	contenido, err := GenerarPDFEquipos(equiposDeEjemplo())
	require.NoError(t, err)
	require.NotEmpty(t, contenido)

	// Firma de archivo PDF
	assert.True(t, bytes.HasPrefix(contenido, []byte("%PDF")))
}

func TestGenerarPDFEquiposVacio(t *testing.T) {
	contenido, err := GenerarPDFEquipos(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(contenido, []byte("%PDF")))
}
