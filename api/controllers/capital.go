package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nairmotors/dealerbook-backend/api/responses"
	"github.com/nairmotors/dealerbook-backend/api/validators"
	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
)

type capitalAmountBody struct {
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

func capitalTypeFromPath(r *http.Request) (enums.CapitalType, error) {
	parsed, err := enums.ParseCapitalType(chi.URLParam(r, "capitalType"))
	if err != nil {
		return "", apperrors.New(apperrors.CodeValidation, "unknown capital type")
	}
	return parsed, nil
}

func parseSignedAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperrors.New(apperrors.CodeValidation, "amount must be a decimal number")
	}
	return amount, nil
}

// CapitalBalances returns all three account balances.
func CapitalBalances(svc capital.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balances := map[string]string{}
		for _, capitalType := range enums.AllCapitalTypes() {
			balance, err := svc.Balance(r.Context(), capitalType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			balances[string(capitalType)] = balance.String()
		}
		responses.WriteSuccess(w, balances)
	}
}

func CapitalEntries(svc capital.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capitalType, err := capitalTypeFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entries, err := svc.Entries(r.Context(), capitalType, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}

// CapitalAdjust moves a balance by a signed amount.
func CapitalAdjust(svc capital.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capitalType, err := capitalTypeFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body capitalAmountBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := parseSignedAmount(body.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		account, err := svc.Adjust(r.Context(), capital.AdjustInput{
			Type:        capitalType,
			Amount:      amount,
			Description: validators.SanitizeString(body.Description, 500),
			Reason:      validators.SanitizeString(body.Reason, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func CapitalSetBalance(svc capital.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capitalType, err := capitalTypeFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body capitalAmountBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := parseSignedAmount(body.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		account, err := svc.SetBalance(r.Context(), capital.SetBalanceInput{
			Type:        capitalType,
			NewBalance:  amount,
			Description: validators.SanitizeString(body.Description, 500),
			Reason:      validators.SanitizeString(body.Reason, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func CapitalSetInitial(svc capital.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		capitalType, err := capitalTypeFromPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body capitalAmountBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		amount, err := parseSignedAmount(body.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		account, err := svc.SetInitial(r.Context(), capital.SetInitialInput{
			Type:        capitalType,
			Amount:      amount,
			Description: validators.SanitizeString(body.Description, 500),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}
