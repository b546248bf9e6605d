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

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/catalog"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/config"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/handlers"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/store"
)

func main() {
	// Configure slog before anything else can log.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStoreWithTTL(cfg.DBPath, cfg.CacheTTL)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Catalog client
	catalogClient := catalog.NewClient(cfg.CatalogAPIKey)
	if cfg.CatalogURL != "" {
		catalogClient.BaseURL = cfg.CatalogURL
	}

	// 5. Setup Handlers
	authHandler := &handlers.AuthHandler{
		Store:        db,
		SessionStore: sessionStore,
	}
	shopHandler := &handlers.ShopHandler{
		Store: db,
	}
	cartHandler := &handlers.CartHandler{
		Store:        db,
		SessionStore: sessionStore,
	}
	profileHandler := &handlers.ProfileHandler{
		Store: db,
	}
	adminHandler := &handlers.AdminHandler{
		Store:       db,
		Catalog:     catalogClient,
		AdminSecret: cfg.AdminSecret,
	}
	catalogHandler := &handlers.CatalogHandler{
		Client: catalogClient,
	}

	mux := http.NewServeMux()

	// Static Files (card images uploaded by admins)
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiters
	loginLimiter := handlers.NewRateLimiter(3 * time.Second)
	checkoutLimiter := handlers.NewRateLimiter(3 * time.Second)
	importLimiter := handlers.NewRateLimiter(30 * time.Second)

	// Public shop
	mux.HandleFunc("GET /api/cards", shopHandler.ListCards)
	mux.HandleFunc("GET /api/cards/stock", shopHandler.Stock)
	mux.HandleFunc("GET /api/cards/{id}", shopHandler.CardDetail)

	// Catalog browse pages (bypass the shop database entirely)
	mux.HandleFunc("GET /api/catalog/sets", catalogHandler.ListSets)
	mux.HandleFunc("GET /api/catalog/search", catalogHandler.SearchCards)

	// CSRF token for API clients
	mux.HandleFunc("GET /api/csrf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"` + csrf.Token(r) + `"}`))
	})

	// Auth
	mux.HandleFunc("POST /api/register", loginLimiter.Middleware(authHandler.Register))
	mux.HandleFunc("POST /api/login", loginLimiter.Middleware(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)

	// Cart & checkout
	mux.HandleFunc("GET /api/cart", cartHandler.ViewCart)
	mux.HandleFunc("POST /api/cart", cartHandler.AddToCart)
	mux.HandleFunc("POST /api/cart/update", cartHandler.UpdateCart)
	mux.HandleFunc("POST /api/cart/remove", cartHandler.RemoveFromCart)
	mux.HandleFunc("POST /api/checkout", checkoutLimiter.Middleware(authHandler.RequireAuth(cartHandler.Checkout)))

	// Profile
	mux.HandleFunc("GET /api/profile", authHandler.RequireAuth(profileHandler.Profile))
	mux.HandleFunc("GET /api/profile/orders", authHandler.RequireAuth(profileHandler.MyOrders))
	mux.HandleFunc("GET /api/profile/collection", authHandler.RequireAuth(profileHandler.MyCollection))
	mux.HandleFunc("POST /api/profile/collection", authHandler.RequireAuth(profileHandler.AddToCollection))
	mux.HandleFunc("DELETE /api/profile/collection/{id}", authHandler.RequireAuth(profileHandler.RemoveFromCollection))

	// Admin back-office
	mux.HandleFunc("GET /api/admin/dashboard", authHandler.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("GET /api/admin/cards", authHandler.RequireAdmin(adminHandler.ListCards))
	mux.HandleFunc("POST /api/admin/cards", authHandler.RequireAdmin(adminHandler.CreateCard))
	mux.HandleFunc("PUT /api/admin/cards/{id}", authHandler.RequireAdmin(adminHandler.UpdateCard))
	mux.HandleFunc("DELETE /api/admin/cards/{id}", authHandler.RequireAdmin(adminHandler.DeleteCard))
	mux.HandleFunc("DELETE /api/admin/cards", authHandler.RequireAdmin(adminHandler.DeleteCardGroup))
	mux.HandleFunc("POST /api/admin/cards/{id}/image", authHandler.RequireAdmin(adminHandler.UploadCardImage))
	mux.HandleFunc("POST /api/admin/import", importLimiter.Middleware(authHandler.RequireAdmin(adminHandler.ImportCards)))
	mux.HandleFunc("GET /api/admin/orders", authHandler.RequireAdmin(adminHandler.ListOrders))
	mux.HandleFunc("GET /api/admin/orders/{id}", authHandler.RequireAdmin(adminHandler.OrderDetail))
	mux.HandleFunc("PUT /api/admin/orders/{id}/status", authHandler.RequireAdmin(adminHandler.UpdateOrderStatus))
	mux.HandleFunc("GET /api/admin/users", authHandler.RequireAdmin(adminHandler.ListUsers))
	mux.HandleFunc("POST /api/admin/set-admin", adminHandler.SetAdmin)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
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
