package database

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inventario/internal/auth"
	"inventario/internal/equipo"
)

var areasIniciales = []equipo.Area{
	{Nombre: "Administración", Descripcion: "Área administrativa y de gestión"},
	{Nombre: "Producción", Descripcion: "Área de producción y manufactura"},
	{Nombre: "Mantenimiento", Descripcion: "Área de mantenimiento y reparaciones"},
	{Nombre: "Almacén", Descripcion: "Área de almacenamiento y logística"},
	{Nombre: "IT/Tecnología", Descripcion: "Área de tecnologías de la información"},
	{Nombre: "Recursos Humanos", Descripcion: "Área de recursos humanos"},
	{Nombre: "Contabilidad", Descripcion: "Área de contabilidad y finanzas"},
	{Nombre: "Ventas", Descripcion: "Área de ventas y comercialización"},
	{Nombre: "Marketing", Descripcion: "Área de marketing y publicidad"},
	{Nombre: "Seguridad", Descripcion: "Área de seguridad y vigilancia"},
}

var estadosIniciales = []equipo.Estado{
	{Nombre: "Operativo", Descripcion: "Equipo funcionando correctamente"},
	{Nombre: "Inoperativo", Descripcion: "Equipo fuera de servicio"},
	{Nombre: "En Mantenimiento", Descripcion: "Equipo en proceso de mantenimiento"},
	{Nombre: "En Reparación", Descripcion: "Equipo siendo reparado"},
	{Nombre: "Fuera de Servicio", Descripcion: "Equipo retirado del servicio"},
	{Nombre: "En Almacén", Descripcion: "Equipo almacenado temporalmente"},
}

type usuarioInicial struct {
	Username string
	Email    string
	Password string
	Nombre   string
	Rol      string
}

var usuariosIniciales = []usuarioInicial{
	{"admin", "admin@inventario.com", "admin123", "Administrador Sistema", auth.RolAdmin},
	{"supervisor", "supervisor@inventario.com", "supervisor123", "Usuario Supervisor", auth.RolSupervisor},
	{"inventario", "inventario@empresa.com", "inventario123", "Usuario Inventario", auth.RolUsuario},
}

// Seed inserta los catálogos y usuarios por defecto. Es idempotente:
// los registros existentes no se tocan.
func Seed(db *gorm.DB) error {
	for i := range areasIniciales {
		if err := seedArea(db, &areasIniciales[i]); err != nil {
			return err
		}
	}

	for i := range estadosIniciales {
		if err := seedEstado(db, &estadosIniciales[i]); err != nil {
			return err
		}
	}

	for _, u := range usuariosIniciales {
		if err := seedUsuario(db, u); err != nil {
			return err
		}
	}

	log.Println("Datos iniciales verificados")
	return nil
}

func seedArea(db *gorm.DB, area *equipo.Area) error {
	var existente equipo.Area
	err := db.Where("nombre = ?", area.Nombre).First(&existente).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	nueva := *area
	nueva.ID = uuid.New()
	return db.Create(&nueva).Error
}

func seedEstado(db *gorm.DB, estado *equipo.Estado) error {
	var existente equipo.Estado
	err := db.Where("nombre = ?", estado.Nombre).First(&existente).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	nuevo := *estado
	nuevo.ID = uuid.New()
	return db.Create(&nuevo).Error
}

func seedUsuario(db *gorm.DB, u usuarioInicial) error {
	var existente auth.User
	err := db.Where("username = ?", u.Username).First(&existente).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := auth.User{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: string(hash),
		Nombre:       u.Nombre,
		IsActive:     true,
	}
	user.ID = uuid.New()

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		perfil := auth.PerfilPorRol(user.ID, u.Rol)
		return tx.Create(&perfil).Error
	})
}
