package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrCredencialesInvalidas = errors.New("usuario o contraseña incorrectos")
	ErrUsuarioInactivo       = errors.New("el usuario está deshabilitado")
	ErrUsuarioExiste         = errors.New("el nombre de usuario ya está en uso")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Login verifica las credenciales y devuelve el usuario con su perfil
// cargado. Actualiza last_login en cada acceso exitoso.
func (s *Service) Login(username, password string) (*User, error) {
	var user User
	err := s.db.Preload("Perfil").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredencialesInvalidas
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrUsuarioInactivo
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrCredencialesInvalidas
	}

	ahora := time.Now()
	user.LastLogin = &ahora
	s.db.Model(&user).Update("last_login", ahora)

	return &user, nil
}

// Registrar crea un usuario nuevo con el perfil de permisos de su rol
func (s *Service) Registrar(username, email, password, nombre, rol string) (*User, error) {
	var existentes int64
	err := s.db.Model(&User{}).Where("username = ? OR email = ?", username, email).Count(&existentes).Error
	if err != nil {
		return nil, err
	}
	if existentes > 0 {
		return nil, ErrUsuarioExiste
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       nombre,
		IsActive:     true,
	}
	user.ID = uuid.New()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		perfil := PerfilPorRol(user.ID, rol)
		if err := tx.Create(&perfil).Error; err != nil {
			return err
		}
		user.Perfil = &perfil
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsuarioExiste
		}
		return nil, err
	}

	return &user, nil
}

// ObtenerPerfil carga el perfil de permisos del usuario
func (s *Service) ObtenerPerfil(userID uuid.UUID) (*Perfil, error) {
	var perfil Perfil
	err := s.db.Where("user_id = ?", userID).First(&perfil).Error
	if err != nil {
		return nil, err
	}
	return &perfil, nil
}

// ObtenerUsuario devuelve el usuario con su perfil
func (s *Service) ObtenerUsuario(userID uuid.UUID) (*User, error) {
	var user User
	err := s.db.Preload("Perfil").First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
