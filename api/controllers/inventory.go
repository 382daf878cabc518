package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nairmotors/dealerbook-backend/api/responses"
	"github.com/nairmotors/dealerbook-backend/api/validators"
	"github.com/nairmotors/dealerbook-backend/internal/inventory"
	apperrors "github.com/nairmotors/dealerbook-backend/pkg/errors"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
)

type createBrandBody struct {
	Name   string   `json:"name" validate:"required"`
	Models []string `json:"models"`
}

func CreateBrand(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createBrandBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		brand, err := svc.CreateBrand(r.Context(), validators.SanitizeString(body.Name, 255), body.Models)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, brand)
	}
}

func ListBrands(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := svc.ListBrands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, brands)
	}
}

// BrandDetail returns a brand with its per-model stock summary.
func BrandDetail(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "brandId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "invalid brand id"))
			return
		}
		brand, summaries, err := svc.BrandDetail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"brand": brand, "vehicles": summaries})
	}
}

func GetVehicle(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "vehicleId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, apperrors.New(apperrors.CodeValidation, "invalid vehicle id"))
			return
		}
		vehicle, err := svc.Vehicle(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vehicle)
	}
}
