package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"parkvue/internal/api"
	"parkvue/internal/auth"
	"parkvue/internal/repository"
	"parkvue/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingRepo := repository.NewBookingRepository(db)
	spotRepo := repository.NewSpotRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	var stripeSvc *service.StripeService
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		stripeSvc = service.NewStripeService(key)
	}

	bookingSvc := service.NewBookingService(bookingRepo, spotRepo, stripeSvc)
	otpSvc := service.NewOTPService(otpRepo)
	adminSvc := service.NewAdminService(bookingRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	receiptSvc := service.NewReceiptService()
	jobSvc := service.NewJobService(otpRepo)

	var detectSvc *service.DetectService
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		detectSvc, err = service.NewDetectService(context.Background(), key)
		if err != nil {
			log.Fatalf("Failed to init plate detection: %v", err)
		}
	} else {
		log.Println("GEMINI_API_KEY not set, plate detection disabled")
	}

	userHandler := api.NewUserBookingHandler(bookingSvc, receiptSvc)
	otpHandler := api.NewOTPHandler(otpSvc)
	detectHandler := api.NewDetectHandler(detectSvc)
	adminHandler := api.NewAdminHandler(adminSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints (kiosk wizard + exit flow)
	r.HandleFunc("/api/spots", userHandler.ListSpots).Methods("GET")
	r.HandleFunc("/api/plans", userHandler.ListPlans).Methods("GET")
	r.HandleFunc("/api/bookings", userHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{id}", userHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/bookings/{id}/receipt", userHandler.SendReceipt).Methods("POST")
	r.HandleFunc("/api/exit/verify", userHandler.VerifyExit).Methods("POST")
	r.HandleFunc("/api/exit", userHandler.Exit).Methods("POST")
	r.HandleFunc("/api/otp/send", otpHandler.SendOTP).Methods("POST")
	r.HandleFunc("/api/otp/verify", otpHandler.VerifyOTP).Methods("POST")
	r.HandleFunc("/api/detect-plate", detectHandler.DetectPlate).Methods("POST")
	r.HandleFunc("/api/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/stats", adminHandler.GetStats).Methods("GET")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/export", adminHandler.ExportCSV).Methods("GET")
	admin.HandleFunc("/reset", adminHandler.ResetSystem).Methods("POST")
	admin.HandleFunc("/users", adminAuthHandler.CreateAdmin).Methods("POST")

	c := cron.New()
	c.AddFunc("@hourly", jobSvc.PurgeStaleOTPs)
	c.Start()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Server running on port %s", port)
	log.Fatal(srv.ListenAndServe())
}
