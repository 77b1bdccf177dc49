package equipo

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, fixtures) {
	gin.SetMode(gin.TestMode)

	svc, _, fx := setupServiceTest(t)
	handler := NewHandler(svc)

	router := gin.New()
	router.POST("/equipos", handler.Crear)
	router.PUT("/equipos/:id", handler.Actualizar)
	return router, fx
}

func postEquipo(t *testing.T, router *gin.Engine, payload map[string]string) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/equipos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_Crear(t *testing.T) {
	t.Run("alta con precio válido", func(t *testing.T) {
		router, fx := setupHandlerTest(t)

		w := postEquipo(t, router, map[string]string{
			"nombre": "Computadora Dell",
			"tipo":   "Computadora",
			"precio": "1200.50",
			"area":   fx.area.ID.String(),
			"estado": fx.estado.ID.String(),
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Equipo creado exitosamente")
		assert.Contains(t, w.Body.String(), "1200.50")
	})

	t.Run("precio mal formado responde 400", func(t *testing.T) {
		router, fx := setupHandlerTest(t)

		w := postEquipo(t, router, map[string]string{
			"nombre": "Computadora Dell",
			"tipo":   "Computadora",
			"precio": "mil doscientos",
			"area":   fx.area.ID.String(),
			"estado": fx.estado.ID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Precio inválido 'mil doscientos'")
	})

	t.Run("precio vacío queda nulo", func(t *testing.T) {
		router, fx := setupHandlerTest(t)

		w := postEquipo(t, router, map[string]string{
			"nombre": "Impresora HP",
			"tipo":   "Impresora",
			"precio": "",
			"area":   fx.area.ID.String(),
			"estado": fx.estado.ID.String(),
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "precio")
	})

	t.Run("area inexistente responde 400", func(t *testing.T) {
		router, fx := setupHandlerTest(t)

		w := postEquipo(t, router, map[string]string{
			"nombre": "Proyector",
			"tipo":   "Proyector",
			"area":   "no-es-un-uuid",
			"estado": fx.estado.ID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrAreaNoExiste.Error())
	})
}
