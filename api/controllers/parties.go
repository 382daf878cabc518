package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nairmotors/dealerbook-backend/api/responses"
	"github.com/nairmotors/dealerbook-backend/api/validators"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
)

type createPartyBody struct {
	Kind    string `json:"kind" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func CreateParty(svc parties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createPartyBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		kind, err := enums.ParsePersonType(body.Kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "unknown party kind"))
			return
		}
		party, err := svc.CreateParty(r.Context(), parties.CreatePartyInput{
			Kind:    kind,
			Name:    validators.SanitizeString(body.Name, 255),
			Phone:   validators.SanitizeString(body.Phone, 32),
			Address: validators.SanitizeString(body.Address, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, party)
	}
}

func ListPartiesByKind(svc parties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, err := enums.ParsePersonType(r.URL.Query().Get("kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "unknown party kind"))
			return
		}
		results, err := svc.ListByKind(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, results)
	}
}

// PurchaseTransactions lists every person transaction a purchase produced.
func PurchaseTransactions(svc parties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "purchaseId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "invalid purchase id"))
			return
		}
		txns, err := svc.PurchaseTransactions(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txns)
	}
}

// TransactionByNo resolves a receipt by its transaction number.
func TransactionByNo(svc parties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		no, err := strconv.ParseInt(chi.URLParam(r, "transactionNo"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "invalid transaction number"))
			return
		}
		txn, err := svc.TransactionByNo(r.Context(), no)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txn)
	}
}

// PartyTransactions lists a party's ledger history, newest first.
func PartyTransactions(svc parties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "partyId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "invalid party id"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		txns, err := svc.Transactions(r.Context(), id, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txns)
	}
}
