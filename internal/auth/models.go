package auth

import (
	"time"

	"github.com/google/uuid"

	"inventario/internal/common"
)

// Roles disponibles. Cada rol lleva un perfil de permisos por defecto
// que se materializa al crear el usuario.
const (
	RolAdmin      = "admin"
	RolSupervisor = "supervisor"
	RolUsuario    = "usuario"
)

type User struct {
	common.BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;not null;size:50"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	Nombre       string     `json:"nombre" gorm:"size:100"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	Perfil *Perfil `json:"perfil,omitempty" gorm:"foreignKey:UserID"`
}

// Perfil - permisos efectivos del usuario. Se crean según el rol pero
// un admin puede ajustarlos individualmente.
type Perfil struct {
	common.BaseModel
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Rol           string    `json:"rol" gorm:"size:20;not null;default:'usuario'"`
	PuedeCrear    bool      `json:"puede_crear" gorm:"default:false"`
	PuedeEditar   bool      `json:"puede_editar" gorm:"default:false"`
	PuedeEliminar bool      `json:"puede_eliminar" gorm:"default:false"`
	PuedeExportar bool      `json:"puede_exportar" gorm:"default:true"`
	PuedeImportar bool      `json:"puede_importar" gorm:"default:false"`
}

// PerfilPorRol devuelve los permisos por defecto del rol
func PerfilPorRol(userID uuid.UUID, rol string) Perfil {
	p := Perfil{UserID: userID, Rol: rol}
	p.ID = uuid.New()

	switch rol {
	case RolAdmin, RolSupervisor:
		p.PuedeCrear = true
		p.PuedeEditar = true
		p.PuedeEliminar = true
		p.PuedeExportar = true
		p.PuedeImportar = true
	default:
		// Los usuarios normales no eliminan ni importan
		p.Rol = RolUsuario
		p.PuedeCrear = true
		p.PuedeEditar = true
		p.PuedeExportar = true
	}
	return p
}

// Tiene informa si el perfil concede el permiso nombrado
func (p *Perfil) Tiene(permiso string) bool {
	switch permiso {
	case "crear":
		return p.PuedeCrear
	case "editar":
		return p.PuedeEditar
	case "eliminar":
		return p.PuedeEliminar
	case "exportar":
		return p.PuedeExportar
	case "importar":
		return p.PuedeImportar
	}
	return false
}
