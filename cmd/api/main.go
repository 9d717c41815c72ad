package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/arifhossain/multimart-backend/internal/metrics"
	"github.com/arifhossain/multimart-backend/internal/modules/auth"
	"github.com/arifhossain/multimart-backend/internal/modules/cart"
	"github.com/arifhossain/multimart-backend/internal/modules/catalog"
	"github.com/arifhossain/multimart-backend/internal/modules/review"
	"github.com/arifhossain/multimart-backend/internal/modules/user"
	"github.com/arifhossain/multimart-backend/internal/modules/vendor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	serverMetrics := metrics.NewServerMetrics()

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(serverMetrics.Middleware)
	router.Use(auth.Middleware(userRepo, secret))

	// ── Phase 1: Catalog ────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	categoryRepo := catalog.NewCategoryPostgresRepository(db)
	vendorRepo := vendor.NewPostgresRepository(db)

	reviewRepo := review.NewPostgresRepository(db)
	reviewService := review.NewService(reviewRepo, catalogRepo)
	review.NewHandler(reviewService).RegisterRoutes(router)

	catalogService := catalog.NewService(catalogRepo, categoryRepo, vendorRepo, reviewService)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Phase 2: Carts ──────────────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, catalogRepo)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Phase 3: Identity & Vendors ─────────────────────────
	userService := user.NewService(userRepo, cartService)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := auth.NewService(userRepo, secret)
	auth.NewHandler(authService).RegisterRoutes(router)

	vendorService := vendor.NewService(vendorRepo, userRepo)
	vendor.NewHandler(vendorService).RegisterRoutes(router)

	// ── Observability ───────────────────────────────────────
	router.Handle("/metrics", metrics.Handler())

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Multimart API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
