package equipo

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// DerivarPrefijo genera el prefijo de 3 letras del número de serie a
// partir del tipo de equipo. Regla canónica, usada tanto en el alta
// manual como en la importación masiva:
//
//   - se descartan los caracteres que no sean letras ASCII o espacios
//   - 2+ palabras: iniciales de las primeras 3 palabras
//   - 1 palabra de 3+ letras: sus primeras 3 letras
//   - en cualquier otro caso se rellena con 'X' hasta 3 caracteres
func DerivarPrefijo(tipo string) string {
	var limpio strings.Builder
	for _, r := range tipo {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			limpio.WriteRune(r)
		case unicode.IsSpace(r):
			limpio.WriteRune(' ')
		}
	}

	palabras := strings.Fields(limpio.String())

	var prefijo string
	switch {
	case len(palabras) >= 2:
		n := len(palabras)
		if n > 3 {
			n = 3
		}
		for _, palabra := range palabras[:n] {
			prefijo += palabra[:1]
		}
	case len(palabras) == 1 && len(palabras[0]) >= 3:
		prefijo = palabras[0][:3]
	case len(palabras) == 1:
		prefijo = palabras[0]
	}

	prefijo = strings.ToUpper(prefijo)
	for len(prefijo) < 3 {
		prefijo += "X"
	}
	return prefijo[:3]
}

// SiguienteNumeroSerie devuelve el próximo número de serie libre para el
// prefijo dado, formato PRE-00001. El sufijo numérico es de ancho fijo,
// por lo que el MAX lexicográfico coincide con el máximo numérico.
//
// Debe llamarse dentro de la misma transacción que el INSERT; el caller
// reintenta ante una violación de unicidad (ver Service.Crear).
func SiguienteNumeroSerie(tx *gorm.DB, prefijo string) (string, error) {
	var ultimo sql.NullString
	err := tx.Model(&Equipo{}).
		Where("numero_serie LIKE ?", prefijo+"-%").
		Select("MAX(numero_serie)").
		Scan(&ultimo).Error
	if err != nil {
		return "", fmt.Errorf("error buscando último número de serie para %s: %w", prefijo, err)
	}

	num := 1
	if ultimo.Valid && ultimo.String != "" {
		partes := strings.SplitN(ultimo.String, "-", 2)
		if len(partes) == 2 {
			if n, err := strconv.Atoi(partes[1]); err == nil {
				num = n + 1
			}
		}
	}

	return fmt.Sprintf("%s-%05d", prefijo, num), nil
}
