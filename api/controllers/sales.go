package controllers

import (
	"net/http"

	"github.com/nairmotors/dealerbook-backend/api/responses"
	"github.com/nairmotors/dealerbook-backend/api/validators"
	"github.com/nairmotors/dealerbook-backend/internal/sales"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
)

// RecordSalePayment handles customer payment recording.
func RecordSalePayment(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body sales.RecordPaymentInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.PersonName = validators.SanitizeString(body.PersonName, 255)
		body.Description = validators.SanitizeString(body.Description, 2000)

		txn, err := svc.RecordPayment(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}
