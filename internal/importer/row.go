package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FilaEquipo - datos ya validados y coercionados de una fila del archivo
type FilaEquipo struct {
	Fila int

	Nombre       string
	Tipo         string
	AreaNombre   string
	EstadoNombre string
	SedeNombre   string

	NumeroSerie   string
	Marca         string
	Modelo        string
	Proveedor     string
	Observacion   string
	Precio        *decimal.Decimal
	FechaCompra   *time.Time
	GarantiaHasta *time.Time
}

// Formatos de fecha aceptados en celdas: el literal DD/MM/YYYY de la
// plantilla, ISO, y los renderizados que excelize produce para celdas
// de fecha nativas
var formatosFecha = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"01-02-06",
	"01-02-2006",
}

// ParseFila valida y coerciona una fila de datos. Devuelve la fila
// parseada (nil si falta un campo requerido y la fila debe saltarse) y
// los errores locales de la fila. Los errores de campos opcionales no
// invalidan el resto de la fila: se acumulan y se sigue procesando.
func ParseFila(celdas []string, mapeo MapeoColumnas, fila int) (*FilaEquipo, []string) {
	var errores []string

	celda := func(campo string) string {
		col, ok := mapeo[campo]
		if !ok || col >= len(celdas) {
			return ""
		}
		return strings.TrimSpace(celdas[col])
	}

	nombre := celda("nombre")
	if esValorVacio(nombre) {
		return nil, append(errores, fmt.Sprintf("Fila %d: Nombre es requerido", fila))
	}

	tipo := celda("tipo")
	if esValorVacio(tipo) {
		return nil, append(errores, fmt.Sprintf("Fila %d: Tipo es requerido", fila))
	}

	areaNombre := celda("area")
	if esValorVacio(areaNombre) {
		return nil, append(errores, fmt.Sprintf("Fila %d: Área es requerida", fila))
	}

	estadoNombre := celda("estado")
	if esValorVacio(estadoNombre) {
		return nil, append(errores, fmt.Sprintf("Fila %d: Estado es requerido", fila))
	}

	fe := &FilaEquipo{
		Fila:         fila,
		Nombre:       nombre,
		Tipo:         tipo,
		AreaNombre:   areaNombre,
		EstadoNombre: estadoNombre,
		SedeNombre:   valorOpcional(celda("sede")),
		NumeroSerie:  valorOpcional(celda("numero_serie")),
		Marca:        valorOpcional(celda("marca")),
		Modelo:       valorOpcional(celda("modelo")),
		Proveedor:    valorOpcional(celda("proveedor")),
		Observacion:  valorOpcional(celda("observacion")),
	}

	if bruto := valorOpcional(celda("precio")); bruto != "" {
		precio, err := parsePrecio(bruto)
		if err != nil {
			errores = append(errores, fmt.Sprintf("Fila %d: Precio inválido '%s'", fila, bruto))
		} else {
			fe.Precio = precio
		}
	}

	if bruto := valorOpcional(celda("fecha_compra")); bruto != "" {
		fecha, err := parseFecha(bruto)
		if err != nil {
			errores = append(errores, fmt.Sprintf("Fila %d: Fecha de compra inválida '%s'", fila, bruto))
		} else {
			fe.FechaCompra = fecha
		}
	}

	if bruto := valorOpcional(celda("garantia_hasta")); bruto != "" {
		fecha, err := parseFecha(bruto)
		if err != nil {
			errores = append(errores, fmt.Sprintf("Fila %d: Fecha de garantía inválida '%s'", fila, bruto))
		} else {
			fe.GarantiaHasta = fecha
		}
	}

	return fe, errores
}

// esValorVacio detecta celdas sin valor real, incluyendo los
// placeholders que generan los serializadores ("nan", "none")
func esValorVacio(valor string) bool {
	switch strings.ToLower(valor) {
	case "", "nan", "none":
		return true
	}
	return false
}

func valorOpcional(valor string) string {
	if esValorVacio(valor) {
		return ""
	}
	return valor
}

// parsePrecio limpia símbolos de moneda y separadores de miles antes de
// parsear como decimal
func parsePrecio(bruto string) (*decimal.Decimal, error) {
	limpio := strings.NewReplacer("$", "", ",", "", " ", "").Replace(bruto)
	precio, err := decimal.NewFromString(limpio)
	if err != nil {
		return nil, err
	}
	return &precio, nil
}

func parseFecha(bruto string) (*time.Time, error) {
	for _, formato := range formatosFecha {
		if t, err := time.Parse(formato, bruto); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("formato de fecha no reconocido: %s", bruto)
}

// filaVacia - true si todas las celdas están en blanco (filas de
// arrastre al final de la hoja)
func filaVacia(celdas []string) bool {
	for _, c := range celdas {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
