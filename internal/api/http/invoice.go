package http

import (
	"net/http"

	"leaseo-backend/internal/domain"
	"leaseo-backend/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

type invoiceResponse struct {
	Invoice *domain.Invoice      `json:"invoice"`
	Items   []domain.InvoiceItem `json:"items"`
}

func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	orderID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	invoice, items, err := h.invoiceService.GenerateInvoice(r.Context(), p, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoiceResponse{Invoice: invoice, Items: items})
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	invoiceID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid invoice id"})
		return
	}

	invoice, items, err := h.invoiceService.GetInvoice(r.Context(), p, invoiceID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoiceResponse{Invoice: invoice, Items: items})
}
