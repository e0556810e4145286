package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pioneering-site/internal/models"
	"pioneering-site/internal/services"
)

const leadSuccessMessage = "Success! Your consultation is booked. We will contact you soon."

type leadSubmitter interface {
	Submit(ctx context.Context, req models.LeadRequest) (*models.Lead, error)
}

type LeadHandler struct {
	leads leadSubmitter
}

func NewLeadHandler(leads leadSubmitter) *LeadHandler {
	return &LeadHandler{leads: leads}
}

func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.LeadRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 32<<10)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	lead, err := h.leads.Submit(r.Context(), req)
	if err != nil {
		var vErr *services.ValidationError
		var dErr *services.DeliveryError
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", vErr.Message, vErr.Fields, r))
		case errors.As(err, &dErr):
			slog.Error("lead_delivery_failed", "error", err)
			writeJSON(w, http.StatusBadGateway, errorResp("EMAIL_ERROR", "Failed to send. Please try again later.", r))
		default:
			slog.Error("lead_submit_failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
		}
		return
	}

	status := http.StatusCreated
	if lead.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, models.LeadResponse{
		Message:   leadSuccessMessage,
		LeadID:    lead.ID,
		Duplicate: lead.Duplicate,
	})
}
