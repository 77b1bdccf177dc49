package importer

import (
	"fmt"
	"strings"
)

// MapeoColumnas - campo canónico → índice de columna en el archivo
type MapeoColumnas map[string]int

// ErrColumnaFaltante - falta una columna obligatoria en la fila de
// cabeceras; aborta la importación completa antes de procesar filas
type ErrColumnaFaltante struct {
	Campo   string
	Aliases []string
}

func (e *ErrColumnaFaltante) Error() string {
	return fmt.Sprintf("Columna requerida '%s' no encontrada. Busque: %s",
		e.Campo, strings.Join(e.Aliases, ", "))
}

// ResolverCabeceras mapea las cabeceras crudas del archivo a los campos
// canónicos. Cada cabecera se normaliza (minúsculas, sin decoración) y
// matchea un campo si contiene alguno de sus alias como subcadena. Ante
// cabeceras duplicadas gana la primera en orden de aparición.
func ResolverCabeceras(cabeceras []string) (MapeoColumnas, error) {
	normalizadas := make([]string, len(cabeceras))
	for i, c := range cabeceras {
		normalizadas[i] = normalizarCabecera(c)
	}

	mapeo := make(MapeoColumnas)

	for _, campo := range columnasRequeridas {
		col, ok := buscarColumna(normalizadas, campo.Aliases)
		if !ok {
			return nil, &ErrColumnaFaltante{Campo: campo.Campo, Aliases: campo.Aliases}
		}
		mapeo[campo.Campo] = col
	}

	for _, campo := range columnasOpcionales {
		if col, ok := buscarColumna(normalizadas, campo.Aliases); ok {
			mapeo[campo.Campo] = col
		}
	}

	return mapeo, nil
}

func buscarColumna(normalizadas []string, aliases []string) (int, bool) {
	for i, cabecera := range normalizadas {
		if cabecera == "" {
			continue
		}
		for _, alias := range aliases {
			if strings.Contains(cabecera, alias) {
				return i, true
			}
		}
	}
	return 0, false
}

// normalizarCabecera limpia una cabecera para el matching: minúsculas,
// sin espacios sobrantes y sin los caracteres decorativos que suelen
// traer las plantillas ("Nombre*", "Fecha Compra (DD/MM/YYYY)", "N° Serie")
func normalizarCabecera(cabecera string) string {
	cabecera = strings.ToLower(strings.TrimSpace(cabecera))

	var b strings.Builder
	for _, r := range cabecera {
		switch r {
		case '*', '(', ')', '°', 'º', '¿', '?', '¡', '!', '"', '\'', '.', ':':
			// decoración, se descarta
		default:
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
