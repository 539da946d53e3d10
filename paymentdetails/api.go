package paymentdetails

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/alovak/payment-details/paymentdetails/models"
	"github.com/go-chi/chi/v5"
)

// BasePath is where the payment details resource is mounted.
const BasePath = "/api/PaymentDetails"

// API is a HTTP API for the payment details service
type API struct {
	service *Service
}

func NewAPI(service *Service) *API {
	return &API{
		service: service,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route(BasePath, func(r chi.Router) {
		r.Get("/", a.listPaymentDetails)
		r.Post("/", a.createPaymentDetail)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.getPaymentDetail)
			r.Put("/", a.updatePaymentDetail)
			r.Delete("/", a.deletePaymentDetail)
		})
	})
}

func (a *API) listPaymentDetails(w http.ResponseWriter, r *http.Request) {
	details, err := a.service.ListPaymentDetails(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}

func (a *API) getPaymentDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := a.service.GetPaymentDetail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (a *API) createPaymentDetail(w http.ResponseWriter, r *http.Request) {
	in := models.PaymentDetailInput{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	detail, err := a.service.CreatePaymentDetail(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%d", BasePath, detail.ID))
	writeJSON(w, http.StatusCreated, detail)
}

func (a *API) updatePaymentDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail := models.PaymentDetail{}
	if err := json.NewDecoder(r.Body).Decode(&detail); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	if err := a.service.UpdatePaymentDetail(r.Context(), id, detail); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) deletePaymentDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := a.service.DeletePaymentDetail(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type errorBody struct {
	Error string `json:"error"`
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid payment detail id %q", raw)})
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, models.ErrMissingField), errors.Is(err, ErrIDMismatch):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
