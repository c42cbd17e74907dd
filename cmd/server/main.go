package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/jawa0111/horeo-foodapp/internal/auth"
	"github.com/jawa0111/horeo-foodapp/internal/checkout"
	"github.com/jawa0111/horeo-foodapp/internal/config"
	"github.com/jawa0111/horeo-foodapp/internal/handlers"
	"github.com/jawa0111/horeo-foodapp/internal/payment"
	"github.com/jawa0111/horeo-foodapp/internal/store"
)

// Checkout attempts outlive a page reload but not a lunch break.
const attemptTTL = 30 * time.Minute

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Platform API and payment provider clients
	apiClient := store.NewClient(cfg.APIBaseURL)
	paymentClient := payment.NewClient(cfg.StripePublishableKey, cfg.StripeMockMode)
	authService := auth.NewService(apiClient)

	// 3. Attempt store: Redis when reachable, in-memory otherwise. The
	// in-memory fallback loses attempts on restart, which only costs the
	// visitor a trip back through checkout.
	var attempts checkout.AttemptStore
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis unreachable, using in-memory attempt store", "addr", cfg.RedisAddr, "error", err)
		attempts = checkout.NewMemoryAttemptStore(attemptTTL)
	} else {
		slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
		attempts = checkout.NewRedisAttemptStore(redisClient)
	}
	cancelPing()

	// 4. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 6. Setup Handlers
	menuHandler := &handlers.MenuHandler{
		API:          apiClient,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	cartHandler := &handlers.CartHandler{
		SessionStore: sessionStore,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		API:          apiClient,
		Auth:         authService,
		Attempts:     attempts,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	paymentHandler := &handlers.PaymentHandler{
		API:          apiClient,
		Payments:     paymentClient,
		Attempts:     attempts,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	confirmationHandler := &handlers.ConfirmationHandler{
		Attempts:     attempts,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	authHandler := &handlers.AuthHandler{
		API:          apiClient,
		Auth:         authService,
		Templates:    templates,
		SessionStore: sessionStore,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter on the mutating checkout routes
	rateLimiter := handlers.NewRateLimiter(rate.Every(2*time.Second), 3)

	// Public Routes
	mux.HandleFunc("GET /{$}", menuHandler.Index)
	mux.HandleFunc("POST /cart/add", cartHandler.Add)
	mux.HandleFunc("POST /cart/update", cartHandler.Update)
	mux.HandleFunc("POST /cart/remove", cartHandler.Remove)

	// Checkout flow
	mux.HandleFunc("GET /checkout", checkoutHandler.Form)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(checkoutHandler.Submit))
	mux.HandleFunc("GET /payment", paymentHandler.Page)
	mux.HandleFunc("POST /payment", rateLimiter.Middleware(paymentHandler.Confirm))
	mux.HandleFunc("GET /order-confirmation", confirmationHandler.Show)

	// Auth & order history
	mux.HandleFunc("GET /login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", authHandler.LoginPost)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /my-orders", authHandler.MyOrders)

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := apiClient.Health(ctx); err != nil {
			slog.Warn("Platform API health check failed", "error", err)
			http.Error(w, "degraded", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		// Fix for "Forbidden - origin invalid": Trust local development origins
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
