package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// pathID parses a numeric {id} path variable.
func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func pageParams(r *http.Request) (page, pageSize int32) {
	page = 1
	pageSize = 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 {
		pageSize = int32(v)
	}
	return page, pageSize
}

type orderResponse struct {
	Order *domain.RentalOrder      `json:"order"`
	Items []domain.RentalOrderItem `json:"items,omitempty"`
}

type createOrderRequest struct {
	Items []struct {
		ProductID int32  `json:"product_id"`
		VariantID *int32 `json:"variant_id,omitempty"`
		Quantity  int32  `json:"quantity"`
	} `json:"items"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	lines := make([]service.NewOrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, service.NewOrderItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}

	order, items, err := h.orderService.CreateOrder(r.Context(), p, lines)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderResponse{Order: order, Items: items})
}

func (h *OrderHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	orderID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.orderService.ConfirmOrder(r.Context(), p, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order})
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	orderID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	if _, err := h.orderService.CancelOrder(r.Context(), p, orderID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: "order cancelled successfully"})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	orderID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), p, orderID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	orderID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	order, items, err := h.orderService.GetOrder(r.Context(), p, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderResponse{Order: order, Items: items})
}

type vendorOrdersResponse struct {
	Orders     []domain.RentalOrder `json:"orders"`
	TotalCount int32                `json:"total_count"`
	Page       int32                `json:"page"`
	PageSize   int32                `json:"page_size"`
}

func (h *OrderHandler) ListVendorOrders(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	page, pageSize := pageParams(r)
	status := r.URL.Query().Get("status")

	orders, total, err := h.orderService.ListVendorOrders(r.Context(), p, status, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vendorOrdersResponse{
		Orders:     orders,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (h *OrderHandler) VendorAnalytics(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())

	analytics, err := h.orderService.GetVendorAnalytics(r.Context(), p)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}
