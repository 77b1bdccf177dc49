package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenDuracion = 24 * time.Hour

var ErrTokenInvalido = errors.New("token inválido o expirado")

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "inventario-dev-secret"
	}
	return []byte(secret)
}

// GenerarToken firma un JWT HS256 con la identidad y el rol del usuario
func GenerarToken(userID uuid.UUID, username, rol string) (string, error) {
	claims := Claims{
		UserID:   userID.String(),
		Username: username,
		Rol:      rol,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenDuracion)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidarToken parsea y verifica la firma del token Bearer
func ValidarToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalido
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
