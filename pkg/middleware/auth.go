package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"inventario/internal/auth"
)

// Auth valida el token Bearer y deja user_id, username y rol en el
// contexto de la request
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token de autorización requerido"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ValidarToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token inválido o expirado"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Token inválido o expirado"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("username", claims.Username)
		c.Set("rol", claims.Rol)
		c.Next()
	}
}

// RequierePermiso corta la request si el perfil del usuario no concede
// el permiso nombrado (crear, editar, eliminar, exportar, importar).
// El perfil se consulta en cada request para que los cambios de
// permisos apliquen sin re-login.
func RequierePermiso(db *gorm.DB, permiso string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No autenticado"})
			c.Abort()
			return
		}

		var perfil auth.Perfil
		err := db.Where("user_id = ?", userID.(uuid.UUID)).First(&perfil).Error
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "No tienes permisos para " + permiso})
			c.Abort()
			return
		}

		if !perfil.Tiene(permiso) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "No tienes permisos para " + permiso})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequiereRol restringe el endpoint a un rol exacto
func RequiereRol(rol string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rolActual, exists := c.Get("rol")
		if !exists || rolActual.(string) != rol {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Acceso restringido"})
			c.Abort()
			return
		}
		c.Next()
	}
}
