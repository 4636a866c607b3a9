package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/benadictjacob/Inav-backend/internal/apperr"
	"github.com/benadictjacob/Inav-backend/internal/engine"
	"github.com/benadictjacob/Inav-backend/internal/httputil"
	"github.com/benadictjacob/Inav-backend/internal/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler is the thin controller layer: decode, validate, delegate, encode.
type Handler struct {
	ledger   *ledger.Service
	engine   *engine.Engine
	log      *zap.Logger
	validate *validator.Validate
	// exposeDetail lets non-production environments see the underlying
	// message of unexpected errors.
	exposeDetail bool
}

func New(ledgerSvc *ledger.Service, engineSvc *engine.Engine, log *zap.Logger, exposeDetail bool) *Handler {
	v := validator.New()
	// Report validation failures under the json field names the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		ledger:       ledgerSvc,
		engine:       engineSvc,
		log:          log,
		validate:     v,
		exposeDetail: exposeDetail,
	}
}

type createPaymentRequest struct {
	AccountNumber string      `json:"account_number" validate:"required"`
	Amount        json.Number `json:"amount" validate:"required"`
}

// Health responds with a liveness payload.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ListCustomers handles GET /api/customers.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.ledger.ListCustomers(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteList(w, http.StatusOK, len(customers), customers)
}

// GetCustomer handles GET /api/customers/{accountNumber}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	customer, err := h.ledger.GetCustomer(r.Context(), accountNumber)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, customer)
}

// GetPaymentHistory handles GET /api/payments/{accountNumber}.
func (h *Handler) GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	history, err := h.ledger.GetPaymentHistory(r.Context(), accountNumber)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteData(w, http.StatusOK, history)
}

// CreatePayment handles POST /api/payments.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "fail", "Invalid request body")
		return
	}
	req.AccountNumber = strings.TrimSpace(req.AccountNumber)

	if errs := h.validateRequest(req); len(errs) > 0 {
		httputil.WriteValidation(w, errs)
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		httputil.WriteValidation(w, []httputil.FieldError{
			{Field: "amount", Message: "Amount must be a number greater than 0"},
		})
		return
	}

	payment, err := h.engine.ApplyPayment(r.Context(), req.AccountNumber, amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteCreated(w, "Payment recorded successfully", payment)
}

func (h *Handler) validateRequest(req any) []httputil.FieldError {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []httputil.FieldError{{Field: "body", Message: "Invalid request"}}
	}
	out := make([]httputil.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := "Invalid value"
		if fe.Tag() == "required" {
			msg = fieldLabel(fe.Field()) + " is required"
		}
		out = append(out, httputil.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}

func fieldLabel(field string) string {
	switch field {
	case "account_number":
		return "Account number"
	case "amount":
		return "Amount"
	}
	return field
}

// writeError maps a service error to the response envelope. Operational
// errors reach the caller as-is; unexpected ones are logged and surfaced
// generically unless detail exposure is on.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		message := ae.Message
		if !ae.Operational {
			h.log.Error("unexpected error", zap.Error(err))
			if !h.exposeDetail {
				message = "Internal server error"
			}
		}
		httputil.WriteError(w, ae.Code, ae.Status(), message)
		return
	}

	h.log.Error("unhandled error", zap.Error(err))
	message := "Internal server error"
	if h.exposeDetail {
		message = err.Error()
	}
	httputil.WriteError(w, http.StatusInternalServerError, "error", message)
}
