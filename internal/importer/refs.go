package importer

import (
	"errors"
	"fmt"

	"inventario/internal/equipo"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolutorReferencias busca Sede/Área/Estado por nombre (ignorando
// mayúsculas) y los crea con descripción en blanco si no existen.
// Idempotente entre filas y entre importaciones: nunca duplica un nombre.
// Cada fila paga su lookup a la base; no hay cache en memoria, de modo
// que el orden de creación sigue el orden de las filas.
type ResolutorReferencias struct {
	db *gorm.DB
}

func NewResolutorReferencias(db *gorm.DB) *ResolutorReferencias {
	return &ResolutorReferencias{db: db}
}

func (r *ResolutorReferencias) ObtenerOCrearArea(nombre string) (*equipo.Area, error) {
	var area equipo.Area
	err := r.db.Where("LOWER(nombre) = LOWER(?)", nombre).First(&area).Error
	if err == nil {
		return &area, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error buscando área '%s': %w", nombre, err)
	}

	area = equipo.Area{Nombre: nombre}
	area.ID = uuid.New()
	if err := r.db.Create(&area).Error; err != nil {
		return nil, fmt.Errorf("no se pudo crear el área '%s': %w", nombre, err)
	}
	return &area, nil
}

func (r *ResolutorReferencias) ObtenerOCrearEstado(nombre string) (*equipo.Estado, error) {
	var estado equipo.Estado
	err := r.db.Where("LOWER(nombre) = LOWER(?)", nombre).First(&estado).Error
	if err == nil {
		return &estado, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error buscando estado '%s': %w", nombre, err)
	}

	estado = equipo.Estado{Nombre: nombre}
	estado.ID = uuid.New()
	if err := r.db.Create(&estado).Error; err != nil {
		return nil, fmt.Errorf("no se pudo crear el estado '%s': %w", nombre, err)
	}
	return &estado, nil
}

func (r *ResolutorReferencias) ObtenerOCrearSede(nombre string) (*equipo.Sede, error) {
	var sede equipo.Sede
	err := r.db.Where("LOWER(nombre) = LOWER(?)", nombre).First(&sede).Error
	if err == nil {
		return &sede, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error buscando sede '%s': %w", nombre, err)
	}

	sede = equipo.Sede{Nombre: nombre}
	sede.ID = uuid.New()
	if err := r.db.Create(&sede).Error; err != nil {
		return nil, fmt.Errorf("no se pudo crear la sede '%s': %w", nombre, err)
	}
	return &sede, nil
}
