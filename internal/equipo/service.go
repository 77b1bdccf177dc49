package equipo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrAreaNoExiste   = errors.New("el área seleccionada no existe")
	ErrEstadoNoExiste = errors.New("el estado seleccionado no existe")
	ErrSedeNoExiste   = errors.New("la sede seleccionada no existe")
	ErrSerieDuplicada = errors.New("el número de serie ya existe")
)

const maxIntentosSerie = 3

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Crear inserta un equipo. Si NumeroSerie viene vacío se genera uno a
// partir del tipo, dentro de la misma transacción que el INSERT, con
// reintento acotado si otra importación concurrente ganó el mismo serial.
func (s *Service) Crear(e *Equipo) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.FechaRegistro.IsZero() {
		e.FechaRegistro = time.Now()
	}

	if err := s.validarReferencias(e); err != nil {
		return err
	}

	if e.NumeroSerie != "" {
		if err := s.db.Create(e).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSerieDuplicada
			}
			return err
		}
		return nil
	}

	prefijo := DerivarPrefijo(e.Tipo)
	for intento := 0; intento < maxIntentosSerie; intento++ {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			serie, err := SiguienteNumeroSerie(tx, prefijo)
			if err != nil {
				return err
			}
			e.NumeroSerie = serie
			return tx.Create(e).Error
		})
		if err == nil {
			return nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Otra transacción tomó este serial, recalcular
			e.NumeroSerie = ""
			continue
		}
		return err
	}
	return fmt.Errorf("no se pudo asignar un número de serie para el prefijo %s", prefijo)
}

func (s *Service) validarReferencias(e *Equipo) error {
	var count int64
	if err := s.db.Model(&Area{}).Where("id = ?", e.AreaID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAreaNoExiste
	}
	if err := s.db.Model(&Estado{}).Where("id = ?", e.EstadoID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrEstadoNoExiste
	}
	if e.SedeID != nil {
		if err := s.db.Model(&Sede{}).Where("id = ?", *e.SedeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrSedeNoExiste
		}
	}
	return nil
}

// ObtenerPorID carga un equipo con sus relaciones
func (s *Service) ObtenerPorID(id uuid.UUID) (*Equipo, error) {
	var e Equipo
	err := s.db.Preload("Sede").Preload("Area").Preload("Estado").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Listar devuelve todos los equipos, más recientes primero
func (s *Service) Listar() ([]Equipo, error) {
	var equipos []Equipo
	err := s.db.Preload("Sede").Preload("Area").Preload("Estado").
		Order("fecha_registro DESC, created_at DESC").
		Find(&equipos).Error
	return equipos, err
}

// ListarOrdenadoPorSerie devuelve los equipos ordenados por número de
// serie, el orden usado en los reportes exportados
func (s *Service) ListarOrdenadoPorSerie() ([]Equipo, error) {
	var equipos []Equipo
	err := s.db.Preload("Sede").Preload("Area").Preload("Estado").
		Order("numero_serie").
		Find(&equipos).Error
	return equipos, err
}

// Actualizar sobreescribe los campos editables de un equipo existente.
// El número de serie solo cambia si se pide explícitamente uno distinto
// y no colisiona con otro equipo; la fecha de registro nunca cambia.
func (s *Service) Actualizar(id uuid.UUID, cambios *Equipo) (*Equipo, error) {
	existente, err := s.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validarReferencias(cambios); err != nil {
		return nil, err
	}

	if serie := strings.TrimSpace(cambios.NumeroSerie); serie != "" && serie != existente.NumeroSerie {
		var count int64
		err := s.db.Model(&Equipo{}).
			Where("numero_serie = ? AND id <> ?", serie, id).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSerieDuplicada
		}
		existente.NumeroSerie = serie
	}

	existente.Nombre = cambios.Nombre
	existente.Tipo = cambios.Tipo
	existente.Marca = cambios.Marca
	existente.Modelo = cambios.Modelo
	existente.Precio = cambios.Precio
	existente.Proveedor = cambios.Proveedor
	existente.FechaCompra = cambios.FechaCompra
	existente.GarantiaHasta = cambios.GarantiaHasta
	existente.FechaMantenimiento = cambios.FechaMantenimiento
	existente.VidaUtil = cambios.VidaUtil
	existente.Observacion = cambios.Observacion
	existente.SedeID = cambios.SedeID
	existente.AreaID = cambios.AreaID
	existente.EstadoID = cambios.EstadoID

	if err := s.db.Save(existente).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSerieDuplicada
		}
		return nil, err
	}
	return s.ObtenerPorID(id)
}

// Eliminar borra un equipo definitivamente
func (s *Service) Eliminar(id uuid.UUID) (*Equipo, error) {
	e, err := s.ObtenerPorID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(&Equipo{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// Catálogos para los formularios

func (s *Service) ListarSedes() ([]Sede, error) {
	var sedes []Sede
	err := s.db.Order("nombre").Find(&sedes).Error
	return sedes, err
}

func (s *Service) ListarAreas() ([]Area, error) {
	var areas []Area
	err := s.db.Order("nombre").Find(&areas).Error
	return areas, err
}

func (s *Service) ListarEstados() ([]Estado, error) {
	var estados []Estado
	err := s.db.Order("nombre").Find(&estados).Error
	return estados, err
}
