package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapeoBase() MapeoColumnas {
	return MapeoColumnas{
		"nombre": 0, "tipo": 1, "area": 2, "estado": 3,
		"precio": 4, "fecha_compra": 5, "garantia_hasta": 6, "numero_serie": 7,
	}
}

func TestParseFila(t *testing.T) {
	t.Run("fila completa", func(t *testing.T) {
		fe, errores := ParseFila([]string{
			"Computadora Dell", "Computadora", "Administración", "Operativo",
			"$1,200.00", "15/01/2023", "15/01/2026", "COM-00001",
		}, mapeoBase(), 2)

		require.NotNil(t, fe)
		assert.Empty(t, errores)
		assert.Equal(t, "Computadora Dell", fe.Nombre)
		assert.Equal(t, "COM-00001", fe.NumeroSerie)
		require.NotNil(t, fe.Precio)
		assert.Equal(t, "1200", fe.Precio.String())
		require.NotNil(t, fe.FechaCompra)
		assert.Equal(t, "2023-01-15", fe.FechaCompra.Format("2006-01-02"))
		require.NotNil(t, fe.GarantiaHasta)
		assert.Equal(t, "2026-01-15", fe.GarantiaHasta.Format("2006-01-02"))
	})

	t.Run("nombre faltante descarta la fila", func(t *testing.T) {
		fe, errores := ParseFila([]string{"", "Computadora", "IT", "Operativo"}, mapeoBase(), 5)
		assert.Nil(t, fe)
		require.Len(t, errores, 1)
		assert.Equal(t, "Fila 5: Nombre es requerido", errores[0])
	})

	t.Run("placeholders cuentan como vacío", func(t *testing.T) {
		fe, errores := ParseFila([]string{"nan", "Computadora", "IT", "Operativo"}, mapeoBase(), 3)
		assert.Nil(t, fe)
		require.Len(t, errores, 1)
		assert.Contains(t, errores[0], "Nombre es requerido")

		fe, _ = ParseFila([]string{"Equipo", "Computadora", "IT", "Operativo", "NONE"}, mapeoBase(), 3)
		require.NotNil(t, fe)
		assert.Nil(t, fe.Precio)
	})

	t.Run("precio inválido no invalida la fila", func(t *testing.T) {
		fe, errores := ParseFila([]string{
			"Equipo", "Computadora", "IT", "Operativo", "caro", "15/01/2023",
		}, mapeoBase(), 7)

		require.NotNil(t, fe)
		require.Len(t, errores, 1)
		assert.Equal(t, "Fila 7: Precio inválido 'caro'", errores[0])
		assert.Nil(t, fe.Precio)
		assert.NotNil(t, fe.FechaCompra)
	})

	t.Run("fecha inválida no invalida la fila", func(t *testing.T) {
		fe, errores := ParseFila([]string{
			"Equipo", "Computadora", "IT", "Operativo", "100", "pronto",
		}, mapeoBase(), 8)

		require.NotNil(t, fe)
		require.Len(t, errores, 1)
		assert.Contains(t, errores[0], "Fecha de compra inválida")
		assert.Nil(t, fe.FechaCompra)
		assert.NotNil(t, fe.Precio)
	})

	t.Run("fecha ISO", func(t *testing.T) {
		fe, errores := ParseFila([]string{
			"Equipo", "Computadora", "IT", "Operativo", "", "2023-06-30",
		}, mapeoBase(), 9)

		require.NotNil(t, fe)
		assert.Empty(t, errores)
		require.NotNil(t, fe.FechaCompra)
		assert.Equal(t, "2023-06-30", fe.FechaCompra.Format("2006-01-02"))
	})

	t.Run("fila más corta que el mapeo", func(t *testing.T) {
		fe, errores := ParseFila([]string{"Equipo", "Computadora", "IT", "Operativo"}, mapeoBase(), 10)
		require.NotNil(t, fe)
		assert.Empty(t, errores)
		assert.Empty(t, fe.NumeroSerie)
	})
}

func TestFilaVacia(t *testing.T) {
	assert.True(t, filaVacia([]string{}))
	assert.True(t, filaVacia([]string{"", "  ", ""}))
	assert.False(t, filaVacia([]string{"", "x"}))
}

func TestParsePrecio(t *testing.T) {
	precio, err := parsePrecio("$ 1,234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", precio.String())

	_, err = parsePrecio("abc")
	assert.Error(t, err)
}
