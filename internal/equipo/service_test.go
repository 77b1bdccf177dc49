package equipo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixtures struct {
	area   Area
	estado Estado
	sede   Sede
}

func setupServiceTest(t *testing.T) (*Service, *gorm.DB, fixtures) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Sede{}, &Area{}, &Estado{}, &Equipo{}))

	fx := fixtures{
		area:   Area{Nombre: "Producción"},
		estado: Estado{Nombre: "Operativo"},
		sede:   Sede{Nombre: "Planta Central"},
	}
	fx.area.ID = uuid.New()
	fx.estado.ID = uuid.New()
	fx.sede.ID = uuid.New()
	require.NoError(t, db.Create(&fx.area).Error)
	require.NoError(t, db.Create(&fx.estado).Error)
	require.NoError(t, db.Create(&fx.sede).Error)

	return NewService(db), db, fx
}

func TestService_Crear(t *testing.T) {
	svc, _, fx := setupServiceTest(t)

	t.Run("genera numero de serie cuando viene vacío", func(t *testing.T) {
		e := Equipo{Nombre: "Compresor Industrial", Tipo: "Compresor", AreaID: fx.area.ID, EstadoID: fx.estado.ID}
		require.NoError(t, svc.Crear(&e))

		assert.Equal(t, "COM-00001", e.NumeroSerie)
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.False(t, e.FechaRegistro.IsZero())
	})

	t.Run("respeta el numero de serie explícito", func(t *testing.T) {
		e := Equipo{Nombre: "Switch de Red", Tipo: "Red", NumeroSerie: "RED-00099", AreaID: fx.area.ID, EstadoID: fx.estado.ID}
		require.NoError(t, svc.Crear(&e))
		assert.Equal(t, "RED-00099", e.NumeroSerie)
	})

	t.Run("serie explícita duplicada", func(t *testing.T) {
		e := Equipo{Nombre: "Otro Switch", Tipo: "Red", NumeroSerie: "RED-00099", AreaID: fx.area.ID, EstadoID: fx.estado.ID}
		err := svc.Crear(&e)
		assert.ErrorIs(t, err, ErrSerieDuplicada)
	})

	t.Run("area inexistente", func(t *testing.T) {
		e := Equipo{Nombre: "Taladro", Tipo: "Herramienta", AreaID: uuid.New(), EstadoID: fx.estado.ID}
		err := svc.Crear(&e)
		assert.ErrorIs(t, err, ErrAreaNoExiste)
	})

	t.Run("estado inexistente", func(t *testing.T) {
		e := Equipo{Nombre: "Taladro", Tipo: "Herramienta", AreaID: fx.area.ID, EstadoID: uuid.New()}
		err := svc.Crear(&e)
		assert.ErrorIs(t, err, ErrEstadoNoExiste)
	})

	t.Run("sede inexistente", func(t *testing.T) {
		sedeID := uuid.New()
		e := Equipo{Nombre: "Taladro", Tipo: "Herramienta", AreaID: fx.area.ID, EstadoID: fx.estado.ID, SedeID: &sedeID}
		err := svc.Crear(&e)
		assert.ErrorIs(t, err, ErrSedeNoExiste)
	})
}

func TestService_Actualizar(t *testing.T) {
	svc, _, fx := setupServiceTest(t)

	precio := decimal.RequireFromString("1200.00")
	e := Equipo{Nombre: "Computadora Administrativa", Tipo: "Computadora", Precio: &precio, AreaID: fx.area.ID, EstadoID: fx.estado.ID}
	require.NoError(t, svc.Crear(&e))

	otro := Equipo{Nombre: "Servidor Web", Tipo: "Servidor", AreaID: fx.area.ID, EstadoID: fx.estado.ID}
	require.NoError(t, svc.Crear(&otro))

	t.Run("actualiza campos editables", func(t *testing.T) {
		cambios := e
		cambios.Nombre = "Computadora Gerencia"
		cambios.Marca = "Dell"
		cambios.SedeID = &fx.sede.ID

		actualizado, err := svc.Actualizar(e.ID, &cambios)
		require.NoError(t, err)
		assert.Equal(t, "Computadora Gerencia", actualizado.Nombre)
		assert.Equal(t, "Dell", actualizado.Marca)
		require.NotNil(t, actualizado.Sede)
		assert.Equal(t, "Planta Central", actualizado.Sede.Nombre)
		assert.Equal(t, e.NumeroSerie, actualizado.NumeroSerie)
	})

	t.Run("la fecha de registro no cambia", func(t *testing.T) {
		original, err := svc.ObtenerPorID(e.ID)
		require.NoError(t, err)

		cambios := *original
		cambios.FechaRegistro = time.Now().AddDate(1, 0, 0)

		actualizado, err := svc.Actualizar(e.ID, &cambios)
		require.NoError(t, err)
		assert.Equal(t, original.FechaRegistro.Format("2006-01-02"), actualizado.FechaRegistro.Format("2006-01-02"))
	})

	t.Run("cambio de serie a una existente", func(t *testing.T) {
		cambios := e
		cambios.NumeroSerie = otro.NumeroSerie

		_, err := svc.Actualizar(e.ID, &cambios)
		assert.ErrorIs(t, err, ErrSerieDuplicada)
	})

	t.Run("equipo inexistente", func(t *testing.T) {
		_, err := svc.Actualizar(uuid.New(), &e)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestService_Eliminar(t *testing.T) {
	svc, db, fx := setupServiceTest(t)

	e := Equipo{Nombre: "Proyector Multimedia", Tipo: "Proyector", AreaID: fx.area.ID, EstadoID: fx.estado.ID}
	require.NoError(t, svc.Crear(&e))

	eliminado, err := svc.Eliminar(e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Nombre, eliminado.Nombre)

	var count int64
	require.NoError(t, db.Model(&Equipo{}).Where("id = ?", e.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEquipo_Garantia(t *testing.T) {
	vigente := time.Now().AddDate(0, 6, 0)
	vencida := time.Now().AddDate(0, -6, 0)

	e := Equipo{}
	assert.False(t, e.GarantiaVigente())

	e.GarantiaHasta = &vigente
	assert.True(t, e.GarantiaVigente())

	e.GarantiaHasta = &vencida
	assert.False(t, e.GarantiaVigente())
}

func TestEquipo_Mantenimiento(t *testing.T) {
	e := Equipo{}
	assert.False(t, e.MantenimientoProximo())
	assert.False(t, e.MantenimientoVencido())

	proximo := time.Now().AddDate(0, 0, 15)
	e.FechaMantenimiento = &proximo
	assert.True(t, e.MantenimientoProximo())
	assert.False(t, e.MantenimientoVencido())

	lejano := time.Now().AddDate(0, 0, 90)
	e.FechaMantenimiento = &lejano
	assert.False(t, e.MantenimientoProximo())

	pasado := time.Now().AddDate(0, 0, -5)
	e.FechaMantenimiento = &pasado
	assert.False(t, e.MantenimientoProximo())
	assert.True(t, e.MantenimientoVencido())
}

func TestEquipo_MantenimientoLimites(t *testing.T) {
	// La comparación es por día calendario, no por instante
	hoy := time.Date(2026, 3, 10, 15, 45, 0, 0, time.Local)

	fecha := func(dias int) *time.Time {
		f := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local).AddDate(0, 0, dias)
		return &f
	}

	tests := []struct {
		nombre      string
		fecha       *time.Time
		wantProximo bool
		wantVencido bool
	}{
		{"hoy a medianoche", fecha(0), true, false},
		{"ayer", fecha(-1), false, true},
		{"en 30 días", fecha(30), true, false},
		{"en 31 días", fecha(31), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			e := Equipo{FechaMantenimiento: tt.fecha}
			assert.Equal(t, tt.wantProximo, e.mantenimientoProximoEn(hoy))
			assert.Equal(t, tt.wantVencido, e.mantenimientoVencidoEn(hoy))
		})
	}
}
