package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nombre   string `json:"nombre"`
	Rol      string `json:"rol"`
}

func userJSON(user *User) gin.H {
	respuesta := gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"nombre":   user.Nombre,
	}
	if user.Perfil != nil {
		respuesta["perfil"] = user.Perfil
	}
	return respuesta
}

// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Usuario y contraseña son requeridos"})
		return
	}

	user, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrCredencialesInvalidas), errors.Is(err, ErrUsuarioInactivo):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al iniciar sesión"})
		}
		return
	}

	rol := RolUsuario
	if user.Perfil != nil {
		rol = user.Perfil.Rol
	}

	token, err := GenerarToken(user.ID, user.Username, rol)
	if err != nil {
		log.Printf("No se pudo generar el token para %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al iniciar sesión"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    userJSON(user),
	})
}

// POST /api/v1/auth/register - sólo admins
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Datos de registro inválidos: " + err.Error()})
		return
	}
	if req.Rol == "" {
		req.Rol = RolUsuario
	}
	if req.Rol != RolAdmin && req.Rol != RolSupervisor && req.Rol != RolUsuario {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Rol inválido"})
		return
	}

	user, err := h.service.Registrar(req.Username, req.Email, req.Password, req.Nombre, req.Rol)
	if err != nil {
		if errors.Is(err, ErrUsuarioExiste) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al registrar usuario"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Usuario creado exitosamente",
		"user":    userJSON(user),
	})
}

// GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No autenticado"})
		return
	}

	user, err := h.service.ObtenerUsuario(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userJSON(user)})
}
