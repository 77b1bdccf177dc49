package database

import (
	"gorm.io/gorm"

	"inventario/internal/auth"
	"inventario/internal/equipo"
	"inventario/internal/importer"
)

func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&auth.User{},
		&auth.Perfil{},
		&equipo.Sede{},
		&equipo.Area{},
		&equipo.Estado{},
		&equipo.Equipo{},
		&importer.ImportArchivo{},
	)
	if err != nil {
		return err
	}

	return createInventoryIndexes(db)
}

func createInventoryIndexes(db *gorm.DB) error {
	// La búsqueda de duplicados y la resolución de referencias del
	// import consultan por nombre en minúsculas
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_equipos_nombre_lower_area
		ON equipos (LOWER(nombre), area_id)
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_areas_nombre_lower
		ON areas (LOWER(nombre))
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_estados_nombre_lower
		ON estados (LOWER(nombre))
	`).Error; err != nil {
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_sedes_nombre_lower
		ON sedes (LOWER(nombre))
	`).Error; err != nil {
		return err
	}

	// El generador de series hace MAX(numero_serie) por prefijo
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_equipos_numero_serie_pattern
		ON equipos (numero_serie text_pattern_ops)
	`).Error; err != nil {
		return err
	}

	return nil
}
