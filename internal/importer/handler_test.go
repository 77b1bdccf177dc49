package importer

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventario/internal/archive"
)

func setupHandlerTest(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	_, db := setupEngineTest(t)
	handler := NewHandler(db, archive.NewService(nil))

	router := gin.New()
	router.POST("/equipos/importar", handler.Importar)
	router.GET("/equipos/importaciones", handler.ListarImportaciones)
	return router
}

func requestMultipart(t *testing.T, contenido io.Reader) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("archivo", "equipos.xlsx")
	require.NoError(t, err)
	_, err = io.Copy(part, contenido)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/equipos/importar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandler_Importar(t *testing.T) {
	t.Run("importación exitosa", func(t *testing.T) {
		router := setupHandlerTest(t)

		archivo := crearArchivo(t, [][]interface{}{
			cabecerasPrueba,
			{"Computadora Dell", "Computadora", "Administración", "Operativo", "1200.00", ""},
			{"Impresora HP", "Impresora", "Administración", "Operativo", "", ""},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, requestMultipart(t, archivo))

		require.Equal(t, http.StatusOK, w.Code)

		var respuesta struct {
			Success        bool   `json:"success"`
			Message        string `json:"message"`
			EquiposCreados int    `json:"equipos_creados"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respuesta))
		assert.True(t, respuesta.Success)
		assert.Equal(t, 2, respuesta.EquiposCreados)
		assert.Equal(t, "Se importaron 2 equipos exitosamente", respuesta.Message)
	})

	t.Run("importación parcial informa los errores", func(t *testing.T) {
		router := setupHandlerTest(t)

		archivo := crearArchivo(t, [][]interface{}{
			cabecerasPrueba,
			{"Computadora Dell", "Computadora", "Administración", "Operativo", "", ""},
			{"", "Computadora", "Administración", "Operativo", "", ""},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, requestMultipart(t, archivo))

		require.Equal(t, http.StatusOK, w.Code)

		var respuesta struct {
			Message string   `json:"message"`
			Errores []string `json:"errores"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respuesta))
		assert.Equal(t, "Se importaron 1 equipos exitosamente. Se encontraron 1 errores", respuesta.Message)
		require.Len(t, respuesta.Errores, 1)
	})

	t.Run("sin equipos creados responde 400", func(t *testing.T) {
		router := setupHandlerTest(t)

		archivo := crearArchivo(t, [][]interface{}{
			cabecerasPrueba,
			{"", "Computadora", "Administración", "Operativo", "", ""},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, requestMultipart(t, archivo))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No se pudo importar ningún equipo")
	})

	t.Run("sin archivo responde 400", func(t *testing.T) {
		router := setupHandlerTest(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/equipos/importar", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No se ha seleccionado ningún archivo")
	})

	t.Run("las importaciones quedan registradas", func(t *testing.T) {
		router := setupHandlerTest(t)

		archivo := crearArchivo(t, [][]interface{}{
			cabecerasPrueba,
			{"Proyector Epson", "Proyector", "Administración", "Operativo", "", ""},
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, requestMultipart(t, archivo))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/equipos/importaciones", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var respuesta struct {
			Total         int             `json:"total"`
			Importaciones []ImportArchivo `json:"importaciones"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &respuesta))
		require.Equal(t, 1, respuesta.Total)
		assert.Equal(t, "equipos.xlsx", respuesta.Importaciones[0].Filename)
		assert.Equal(t, 1, respuesta.Importaciones[0].EquiposCreados)
	})
}
