package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"gearbook/internal/database"
	"gearbook/internal/domain"
	"gearbook/internal/middleware"
	"gearbook/internal/modules/auth"
	"gearbook/internal/modules/billing"
	"gearbook/internal/modules/catalog"
	"gearbook/internal/modules/numbering"
	"gearbook/internal/modules/reservation"
	jwtsvc "gearbook/internal/pkg/jwt"
	"gearbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	kitRepo := repository.NewKitRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, orgRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(assetRepo, kitRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reservationService := reservation.NewService(reservationRepo, assetRepo, kitRepo)
	reservationHandler := reservation.NewHandler(reservationService)

	allocator := numbering.NewAllocator(documentRepo, 0)
	billingService := billing.NewService(allocator, documentRepo)
	billingHandler := billing.NewHandler(billingService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			ownerOnly := middleware.RequireRole(string(domain.RoleOwner))
			catalogHandler.RegisterRoutes(protected, ownerOnly)
			reservationHandler.RegisterRoutes(protected)
			billingHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
