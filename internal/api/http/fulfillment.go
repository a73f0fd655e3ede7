package http

import (
	"net/http"

	"leaseo-backend/internal/service"
)

type FulfillmentHandler struct {
	fulfillmentService service.FulfillmentService
}

func NewFulfillmentHandler(fulfillmentService service.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{fulfillmentService: fulfillmentService}
}

func (h *FulfillmentHandler) ConfirmPickup(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	pickupID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid pickup id"})
		return
	}

	pickup, err := h.fulfillmentService.ConfirmPickup(r.Context(), p, pickupID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pickup)
}

type completeReturnRequest struct {
	Condition     string `json:"condition"`
	DamageFeeCents int32 `json:"damage_fee_cents"`
	LateFeeCents   int32 `json:"late_fee_cents"`
}

func (h *FulfillmentHandler) CompleteReturn(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())
	returnID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid return id"})
		return
	}

	var req completeReturnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	ret, err := h.fulfillmentService.ProcessReturn(r.Context(), p, returnID, req.Condition, req.DamageFeeCents, req.LateFeeCents)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ret)
}
