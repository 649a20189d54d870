package controllers

import (
	"net/http"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/api/validators"
	"github.com/angelmondragon/teastore-backend/internal/origins"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

type originRequest struct {
	CountryCode string `json:"country_code" validate:"omitempty,countrycode"`
	Region      string `json:"region"`
	FarmName    string `json:"farm_name"`
	IsOrganic   bool   `json:"is_organic"`
}

type originPatchRequest struct {
	CountryCode *string `json:"country_code" validate:"omitempty,countrycode"`
	Region      *string `json:"region"`
	FarmName    *string `json:"farm_name"`
	IsOrganic   *bool   `json:"is_organic"`
}

// OriginsList accepts the country_code and is_organic filters.
func OriginsList(svc origins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "origin")
			return
		}
		organic, err := validators.ParseQueryBool(r, "is_organic")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), origins.ListOriginsInput{
			CountryCode: validators.QueryString(r, "country_code", 2),
			IsOrganic:   organic,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func OriginsGet(svc origins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "origin")
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func OriginsCreate(svc origins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "origin")
			return
		}
		var body originRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.Create(r.Context(), origins.CreateOriginInput{
			CountryCode: body.CountryCode,
			Region:      body.Region,
			FarmName:    body.FarmName,
			IsOrganic:   body.IsOrganic,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func OriginsUpdate(svc origins.Service, partial bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "origin")
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input origins.UpdateOriginInput
		if partial {
			var body originPatchRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = origins.UpdateOriginInput{
				CountryCode: body.CountryCode,
				Region:      body.Region,
				FarmName:    body.FarmName,
				IsOrganic:   body.IsOrganic,
			}
		} else {
			var body originRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = origins.UpdateOriginInput{
				CountryCode: &body.CountryCode,
				Region:      &body.Region,
				FarmName:    &body.FarmName,
				IsOrganic:   &body.IsOrganic,
			}
		}

		row, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func OriginsDelete(svc origins.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "origin")
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
