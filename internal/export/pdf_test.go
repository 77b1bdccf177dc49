package export

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario/internal/equipo"
)

// contenidoPDF infla los streams del documento para poder inspeccionar
// el texto que termina dibujado
func contenidoPDF(t *testing.T, pdf []byte) []byte {
	var out bytes.Buffer

	resto := pdf
	for {
		i := bytes.Index(resto, []byte("stream\n"))
		if i < 0 {
			break
		}
		resto = resto[i+len("stream\n"):]

		j := bytes.Index(resto, []byte("endstream"))
		if j < 0 {
			break
		}
		bloque := resto[:j]

		if r, err := zlib.NewReader(bytes.NewReader(bloque)); err == nil {
			if inflado, err := io.ReadAll(r); err == nil {
				out.Write(inflado)
			}
			r.Close()
		} else {
			out.Write(bloque)
		}
		resto = resto[j:]
	}

	require.NotEmpty(t, out.Bytes())
	return out.Bytes()
}

func TestGenerarPDFEquiposAcentos(t *testing.T) {
	equipos := []equipo.Equipo{
		{
			Nombre: "Cámara de Seguridad", Tipo: "Seguridad", NumeroSerie: "SEG-00001",
			Area:   equipo.Area{Nombre: "Administración"},
			Estado: equipo.Estado{Nombre: "En Reparación"},
		},
	}

	contenido, err := GenerarPDFEquipos(equipos)
	require.NoError(t, err)

	texto := contenidoPDF(t, contenido)

	// Los acentos van en CP1252 (una sola posición de fuente core), no
	// como la secuencia UTF-8 de dos bytes
	assert.True(t, bytes.Contains(texto, []byte("Administraci\xf3n")))
	assert.True(t, bytes.Contains(texto, []byte("C\xe1mara de Seguridad")))
	assert.True(t, bytes.Contains(texto, []byte("\xc1rea")))
	assert.False(t, bytes.Contains(texto, []byte("Administraci\xc3\xb3n")))
	assert.False(t, bytes.Contains(texto, []byte("\xc3\x81rea")))
}
