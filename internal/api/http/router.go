package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/security"
	"leaseo-backend/internal/service"
)

// RouterConfig carries everything the HTTP surface needs.
type RouterConfig struct {
	TokenManager        security.TokenManager
	AuthService         service.AuthService
	OrderService        service.OrderService
	FulfillmentService  service.FulfillmentService
	InvoiceService      service.InvoiceService
	NotificationService service.NotificationService
	RequestTimeout      time.Duration
}

// NewRouter builds the full route table. Auth endpoints are public; everything
// else sits behind the bearer-token middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.AuthService)
	orderHandler := NewOrderHandler(cfg.OrderService)
	fulfillmentHandler := NewFulfillmentHandler(cfg.FulfillmentService)
	invoiceHandler := NewInvoiceHandler(cfg.InvoiceService)
	notificationHandler := NewNotificationHandler(cfg.NotificationService)
	authMiddleware := NewAuthMiddleware(cfg.TokenManager)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public auth endpoints
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", authHandler.VerifyEmail).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Authenticated endpoints
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware.Handler)

	protected.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/orders/{id:[0-9]+}/confirm", orderHandler.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id:[0-9]+}/cancel", orderHandler.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{id:[0-9]+}/invoice", invoiceHandler.Generate).Methods(http.MethodPost)

	protected.HandleFunc("/pickups/{id:[0-9]+}/confirm", fulfillmentHandler.ConfirmPickup).Methods(http.MethodPost)
	protected.HandleFunc("/returns/{id:[0-9]+}/complete", fulfillmentHandler.CompleteReturn).Methods(http.MethodPost)

	protected.HandleFunc("/invoices/{id:[0-9]+}", invoiceHandler.Get).Methods(http.MethodGet)

	protected.HandleFunc("/vendor/orders", RequireRole(domain.RoleVendor, orderHandler.ListVendorOrders)).Methods(http.MethodGet)
	protected.HandleFunc("/vendor/analytics", RequireRole(domain.RoleVendor, orderHandler.VendorAnalytics)).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	var handler http.Handler = router
	handler = LoggingMiddleware(handler)
	if cfg.RequestTimeout > 0 {
		handler = TimeoutMiddleware(cfg.RequestTimeout)(handler)
	}
	return handler
}
