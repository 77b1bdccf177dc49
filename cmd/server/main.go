package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inventario/internal/archive"
	"inventario/internal/auth"
	"inventario/internal/dashboard"
	"inventario/internal/equipo"
	"inventario/internal/export"
	"inventario/internal/importer"
	"inventario/pkg/database"
	"inventario/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró archivo .env, usando variables de entorno")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Error de base de datos: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error en migraciones: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("Error al insertar datos iniciales: %v", err)
	}

	redisClient := database.ConnectRedis()

	r2Client, err := archive.NewR2ClientFromEnv(context.Background())
	if err != nil {
		log.Printf("Archivado de importaciones deshabilitado: %v", err)
	}
	archivoService := archive.NewService(r2Client)

	// Servicios
	equipoService := equipo.NewService(db)
	authService := auth.NewService(db)
	dashboardService := dashboard.NewService(db, redisClient)

	// Handlers
	equipoHandler := equipo.NewHandler(equipoService)
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	importHandler := importer.NewHandler(db, archivoService)
	exportHandler := export.NewHandler(equipoService)

	importLimiter := middleware.NewImportRateLimiter(redisClient)

	// El resumen del dashboard se cachea; cualquier mutación exitosa
	// del inventario lo invalida
	invalidarDashboard := func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() < 400 {
			dashboardService.InvalidarCache(c.Request.Context())
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "inventario"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)

		protegido := api.Group("")
		protegido.Use(middleware.Auth())
		{
			protegido.GET("/auth/me", authHandler.Me)
			protegido.POST("/auth/register", middleware.RequiereRol(auth.RolAdmin), authHandler.Register)

			protegido.GET("/dashboard", dashboardHandler.Resumen)
			protegido.GET("/catalogos", equipoHandler.Catalogos)

			protegido.GET("/equipos", equipoHandler.Listar)
			protegido.GET("/equipos/:id", equipoHandler.Obtener)
			protegido.POST("/equipos",
				middleware.RequierePermiso(db, "crear"), invalidarDashboard, equipoHandler.Crear)
			protegido.PUT("/equipos/:id",
				middleware.RequierePermiso(db, "editar"), invalidarDashboard, equipoHandler.Actualizar)
			protegido.DELETE("/equipos/:id",
				middleware.RequierePermiso(db, "eliminar"), invalidarDashboard, equipoHandler.Eliminar)

			protegido.POST("/equipos/importar",
				middleware.RequierePermiso(db, "importar"),
				importLimiter.ImportRateLimit(),
				invalidarDashboard,
				importHandler.Importar)
			protegido.GET("/equipos/importaciones",
				middleware.RequierePermiso(db, "importar"), importHandler.ListarImportaciones)
			protegido.GET("/equipos/plantilla", exportHandler.DescargarPlantilla)

			protegido.GET("/equipos/exportar/excel",
				middleware.RequierePermiso(db, "exportar"), exportHandler.ExportarExcel)
			protegido.GET("/equipos/exportar/pdf",
				middleware.RequierePermiso(db, "exportar"), exportHandler.ExportarPDF)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Servidor de inventario escuchando en :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("El servidor HTTP falló: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Apagando servidor...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Apagado forzado: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Servidor detenido")
}
