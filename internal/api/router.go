package api

import (
	"net/http"

	"github.com/tranvh/menuboard/internal/bus"
	"github.com/tranvh/menuboard/internal/images"
	"github.com/tranvh/menuboard/internal/model"
	"github.com/tranvh/menuboard/internal/store"
)

// Config carries the collaborators the router wires into handlers.
type Config struct {
	Store     *store.Store
	Users     *store.Users
	Bus       *bus.Bus
	Images    *images.Store
	JWTSecret string
	Version   string
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{Users: cfg.Users, JWTSecret: cfg.JWTSecret}
	foodsHandler := &FoodsHandler{Store: cfg.Store}
	levelsHandler := &MenuLevelsHandler{Store: cfg.Store}
	historyHandler := &HistoryHandler{Store: cfg.Store}
	uploadHandler := &UploadHandler{Images: cfg.Images}
	eventsHandler := &EventsHandler{Bus: cfg.Bus, Version: cfg.Version}
	versionHandler := &VersionHandler{Bus: cfg.Bus, Version: cfg.Version}

	authMW := AuthMiddleware(cfg.JWTSecret)
	adminOnly := RequireRole(model.RoleAdmin)
	adminOrKitchen := RequireRole(model.RoleAdmin, model.RoleKitchen)

	// Public: login, menu list, event stream, version, images.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/foods", foodsHandler.List)
	mux.HandleFunc("GET /api/events", eventsHandler.Stream)
	mux.HandleFunc("GET /api/version", versionHandler.Get)
	mux.Handle("GET /images/", http.StripPrefix(images.URLPrefix,
		http.FileServer(http.Dir(cfg.Images.Dir()))))

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Foods: curation is admin-only, availability toggles include kitchen.
	mux.Handle("POST /api/foods", authMW(adminOnly(http.HandlerFunc(foodsHandler.Create))))
	mux.Handle("POST /api/foods/reorder", authMW(adminOnly(http.HandlerFunc(foodsHandler.Reorder))))
	mux.Handle("POST /api/foods/levels", authMW(adminOnly(http.HandlerFunc(foodsHandler.ApplyLevels))))
	mux.Handle("POST /api/foods/{id}/status", authMW(adminOrKitchen(http.HandlerFunc(foodsHandler.UpdateStatus))))
	mux.Handle("DELETE /api/foods/{id}", authMW(adminOnly(http.HandlerFunc(foodsHandler.Delete))))

	// Menu-level registry.
	mux.Handle("GET /api/menu-levels", authMW(adminOrKitchen(http.HandlerFunc(levelsHandler.Get))))
	mux.Handle("POST /api/menu-levels", authMW(adminOnly(http.HandlerFunc(levelsHandler.Set))))

	// Status history.
	mux.Handle("GET /api/status-history", authMW(adminOrKitchen(http.HandlerFunc(historyHandler.Query))))

	// Image upload.
	mux.Handle("POST /api/upload", authMW(adminOnly(http.HandlerFunc(uploadHandler.Upload))))

	// Version re-broadcast.
	mux.Handle("POST /api/broadcast-version", authMW(adminOnly(http.HandlerFunc(versionHandler.Broadcast))))

	return mux
}
