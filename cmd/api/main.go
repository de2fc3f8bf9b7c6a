package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hipis/internal/auth"
	"hipis/internal/config"
	"hipis/internal/database"
	"hipis/internal/handlers"
	"hipis/internal/logger"
	"hipis/internal/middleware"
	"hipis/internal/repository"
	"hipis/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Setup(logger.Config{Level: cfg.Log.Level})

	db, err := database.New(&cfg.Mongo)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database connection established", "database", cfg.Mongo.Database)

	if err := db.EnsureIndexes(context.Background()); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	forumRepo := repository.NewForumRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	counselorRepo := repository.NewCounselorRepository(db)
	contactRepo := repository.NewContactRepository(db)

	// Services
	tokenSvc := auth.NewService(&cfg.JWT)
	authSvc := service.NewAuthService(userRepo, tokenSvc)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, notificationRepo)
	counselorSvc := service.NewCounselorService(counselorRepo, appointmentRepo, userRepo, cfg.App.DemoMode)
	adminSvc := service.NewAdminService(userRepo, appointmentRepo, moodRepo, assessmentRepo, forumRepo, resourceRepo, cfg.App.DemoMode)

	// Middleware
	authMw := middleware.NewAuthMiddleware(tokenSvc)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authSvc)
	resourceHandler := handlers.NewResourceHandler(resourceRepo)
	wellnessHandler := handlers.NewWellnessHandler(moodRepo)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentSvc)
	supportHandler := handlers.NewSupportHandler(contactRepo, notificationRepo, userRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	forumHandler := handlers.NewForumHandler(forumRepo, userRepo)
	counselorHandler := handlers.NewCounselorHandler(counselorSvc)
	adminHandler := handlers.NewAdminHandler(adminSvc)

	mux := http.NewServeMux()

	protect := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(h)
	}
	counsellorOnly := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(middleware.RequireRole("counsellor")(h))
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return authMw.Authenticate(middleware.RequireAdmin(h))
	}

	// Health
	mux.HandleFunc("GET /api/ping", healthHandler.Ping)
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Auth; login and signup sit behind the rate limiter.
	mux.Handle("POST /api/auth/signup", rateLimiter.Limit(http.HandlerFunc(authHandler.Signup)))
	mux.Handle("POST /api/auth/login", rateLimiter.Limit(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/auth/profile", protect(authHandler.Profile))

	// Resources
	mux.HandleFunc("GET /api/resources", resourceHandler.List)
	mux.HandleFunc("GET /api/resources/{id}", resourceHandler.Get)
	mux.Handle("POST /api/resources", protect(resourceHandler.Create))
	mux.HandleFunc("PATCH /api/resources/{id}/likes", resourceHandler.Likes)

	// Wellness tracking
	mux.Handle("GET /api/wellness/{userId}", protect(wellnessHandler.List))
	mux.Handle("POST /api/wellness", protect(wellnessHandler.Create))
	mux.Handle("DELETE /api/wellness/{id}", protect(wellnessHandler.Delete))

	// Appointments
	mux.Handle("GET /api/appointments/{userId}", protect(appointmentHandler.List))
	mux.Handle("POST /api/appointments", protect(appointmentHandler.Create))
	mux.Handle("PATCH /api/appointments/{id}/cancel", protect(appointmentHandler.Cancel))

	// Comments
	mux.HandleFunc("GET /api/comments/{resourceId}", commentHandler.List)
	mux.Handle("POST /api/comments", protect(commentHandler.Create))

	// Assessments
	mux.Handle("GET /api/assessments/{userId}", protect(assessmentHandler.List))
	mux.Handle("POST /api/assessments", protect(assessmentHandler.Submit))

	// Support
	mux.Handle("POST /api/support/contact", protect(supportHandler.Contact))

	// Notifications
	mux.Handle("GET /api/notifications/{userId}", protect(notificationHandler.List))
	mux.Handle("POST /api/notifications/{userId}/read", protect(notificationHandler.MarkAllRead))
	mux.Handle("POST /api/notifications/read/{id}", protect(notificationHandler.MarkRead))

	// Forum
	mux.HandleFunc("GET /api/forum", forumHandler.List)
	mux.Handle("POST /api/forum", protect(forumHandler.Create))
	mux.Handle("POST /api/forum/{id}/like", protect(forumHandler.Like))
	mux.Handle("POST /api/forum/{id}/replies", protect(forumHandler.Reply))
	mux.HandleFunc("POST /api/forum/{id}/view", forumHandler.View)

	// Counsellor workspace
	mux.Handle("GET /api/counselor/clients", counsellorOnly(counselorHandler.Clients))
	mux.Handle("GET /api/counselor/clients/{clientId}", counsellorOnly(counselorHandler.ClientDetail))
	mux.Handle("GET /api/counselor/appointments/today", counsellorOnly(counselorHandler.Appointments))
	mux.Handle("GET /api/counselor/appointments/upcoming", counsellorOnly(counselorHandler.UpcomingAppointments))
	mux.Handle("POST /api/counselor/notes", counsellorOnly(counselorHandler.CreateNote))
	mux.Handle("GET /api/counselor/notes", counsellorOnly(counselorHandler.RecentNotes))
	mux.Handle("GET /api/counselor/stats", counsellorOnly(counselorHandler.Stats))
	mux.Handle("POST /api/counselor/clients", counsellorOnly(counselorHandler.AddClient))

	// Admin dashboard
	mux.Handle("GET /api/admin/stats", adminOnly(adminHandler.Stats))
	mux.Handle("GET /api/admin/users", adminOnly(adminHandler.Users))
	mux.Handle("GET /api/admin/wellness", adminOnly(adminHandler.Wellness))
	mux.Handle("GET /api/admin/appointments", adminOnly(adminHandler.Appointments))
	mux.Handle("GET /api/admin/resources", adminOnly(adminHandler.Resources))
	mux.Handle("GET /api/admin/forum", adminOnly(adminHandler.Forum))
	mux.Handle("GET /api/admin/flags", adminOnly(adminHandler.RiskFlags))
	mux.Handle("GET /api/admin/alerts", adminOnly(adminHandler.Alerts))
	mux.Handle("PATCH /api/admin/users/{userId}/status", adminOnly(adminHandler.UserStatus))
	mux.Handle("POST /api/admin/assign-counselor", adminOnly(adminHandler.AssignCounselor))

	handler := corsMw.Handler(middleware.LoggingMiddleware(mux))

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	go func() {
		slog.Info("Server starting", "addr", addr, "env", cfg.App.Env, "demo_mode", cfg.App.DemoMode)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
