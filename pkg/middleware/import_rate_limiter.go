package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Las importaciones masivas son costosas (lectura del workbook completo
// más una transacción por fila), por eso el límite es bajo.
const maxImportacionesPorHora = 10

type ImportRateLimiter struct {
	client *redis.Client
}

func NewImportRateLimiter(client *redis.Client) *ImportRateLimiter {
	return &ImportRateLimiter{client: client}
}

// ImportRateLimit limita las importaciones por usuario por hora.
// Sin Redis el límite queda deshabilitado.
func (irl *ImportRateLimiter) ImportRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "No autenticado"})
			c.Abort()
			return
		}

		if !irl.permitir(userID.(uuid.UUID).String()) {
			reset := irl.proximoReset(userID.(uuid.UUID).String())

			c.Header("X-RateLimit-Limit", strconv.Itoa(maxImportacionesPorHora))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Límite de importaciones alcanzado",
				"message": fmt.Sprintf("Máximo %d importaciones por hora. Intenta de nuevo más tarde.", maxImportacionesPorHora),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxImportacionesPorHora))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(irl.restantes(userID.(uuid.UUID).String())))
		c.Next()
	}
}

func (irl *ImportRateLimiter) permitir(userID string) bool {
	if irl.client == nil {
		return true
	}

	key := fmt.Sprintf("import_rate:%s", userID)

	val, err := irl.client.Get(context.Background(), key).Result()
	if err != nil && err != redis.Nil {
		return true
	}

	var actual int
	if err != redis.Nil {
		actual, _ = strconv.Atoi(val)
	}

	if actual >= maxImportacionesPorHora {
		return false
	}

	pipe := irl.client.Pipeline()
	pipe.Incr(context.Background(), key)
	pipe.Expire(context.Background(), key, time.Hour)
	if _, err := pipe.Exec(context.Background()); err != nil {
		log.Printf("Import rate limiter error: %v", err)
	}

	return true
}

func (irl *ImportRateLimiter) restantes(userID string) int {
	if irl.client == nil {
		return maxImportacionesPorHora
	}

	key := fmt.Sprintf("import_rate:%s", userID)
	val, err := irl.client.Get(context.Background(), key).Result()
	if err != nil {
		return maxImportacionesPorHora
	}

	actual, _ := strconv.Atoi(val)
	restantes := maxImportacionesPorHora - actual
	if restantes < 0 {
		restantes = 0
	}
	return restantes
}

func (irl *ImportRateLimiter) proximoReset(userID string) time.Time {
	if irl.client == nil {
		return time.Now()
	}

	key := fmt.Sprintf("import_rate:%s", userID)
	ttl, err := irl.client.TTL(context.Background(), key).Result()
	if err != nil || ttl < 0 {
		return time.Now().Add(time.Hour)
	}
	return time.Now().Add(ttl)
}
