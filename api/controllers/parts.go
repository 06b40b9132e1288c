package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/responses"
	"github.com/RoyceColton/Maintenance-Inventory-System/api/validators"
	partsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

// ListParts handles the searchable part listing.
func ListParts(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		filter := partsvc.ListFilter{
			Search:    validators.ParseQueryString(r, "search", 200),
			Room:      validators.ParseQueryString(r, "room", 100),
			Appliance: validators.ParseQueryString(r, "appliance", 100),
		}

		parts, err := svc.ListParts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, parts)
	}
}

// CreatePart handles adding a part to the catalog.
func CreatePart(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createPartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.CreatePart(r.Context(), actorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, part)
	}
}

// GetPart handles fetching one part by id.
func GetPart(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		partID, err := validators.ParsePathUUID(chi.URLParam(r, "partID"), "partID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.GetPart(r.Context(), partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, part)
	}
}

// UpdatePart handles partial part edits.
func UpdatePart(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := validators.ParsePathUUID(chi.URLParam(r, "partID"), "partID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.UpdatePart(r.Context(), actorID, partID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, part)
	}
}

// DeletePart handles removing a part and its order history.
func DeletePart(svc partsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := validators.ParsePathUUID(chi.URLParam(r, "partID"), "partID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePart(r.Context(), actorID, partID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdjustPartCount handles the increment and decrement endpoints.
func AdjustPartCount(svc partsvc.Service, delta int, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "parts service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		partID, err := validators.ParsePathUUID(chi.URLParam(r, "partID"), "partID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		part, err := svc.AdjustCount(r.Context(), actorID, partID, delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, part)
	}
}

const (
	maxNameLen      = 120
	maxModelLen     = 64
	maxRoomLen      = 64
	maxApplianceLen = 64
	maxTrackingLen  = 120
	maxUnitLen      = 64
)

type createPartRequest struct {
	Name          string  `json:"name" validate:"required"`
	ModelNumber   string  `json:"model_number" validate:"required"`
	Count         int     `json:"count" validate:"gte=0"`
	Cost          string  `json:"cost" validate:"required"`
	Room          string  `json:"room" validate:"required"`
	Threshold     *int    `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	IsMisc        bool    `json:"is_misc"`
	ApplianceType string  `json:"appliance_type,omitempty"`
	OrderLink     *string `json:"order_link,omitempty" validate:"omitempty,url"`
}

func (p createPartRequest) toCreateInput() (partsvc.CreatePartInput, error) {
	cost, err := parseMoneyField(p.Cost, "cost")
	if err != nil {
		return partsvc.CreatePartInput{}, err
	}
	return partsvc.CreatePartInput{
		Name:          validators.SanitizeString(p.Name, maxNameLen),
		ModelNumber:   validators.SanitizeString(p.ModelNumber, maxModelLen),
		Count:         p.Count,
		Cost:          cost,
		Room:          validators.SanitizeString(p.Room, maxRoomLen),
		Threshold:     p.Threshold,
		IsMisc:        p.IsMisc,
		ApplianceType: validators.SanitizeString(p.ApplianceType, maxApplianceLen),
		OrderLink:     p.OrderLink,
	}, nil
}

type updatePartRequest struct {
	Name          *string `json:"name,omitempty"`
	ModelNumber   *string `json:"model_number,omitempty"`
	Cost          *string `json:"cost,omitempty"`
	Room          *string `json:"room,omitempty"`
	Threshold     *int    `json:"threshold,omitempty" validate:"omitempty,gte=0"`
	IsMisc        *bool   `json:"is_misc,omitempty"`
	ApplianceType *string `json:"appliance_type,omitempty"`
	OrderLink     *string `json:"order_link,omitempty" validate:"omitempty,url"`
}

func (p updatePartRequest) toUpdateInput() (partsvc.UpdatePartInput, error) {
	input := partsvc.UpdatePartInput{
		Threshold: p.Threshold,
		IsMisc:    p.IsMisc,
		OrderLink: p.OrderLink,
	}
	if p.Name != nil {
		name := validators.SanitizeString(*p.Name, maxNameLen)
		input.Name = &name
	}
	if p.ModelNumber != nil {
		model := validators.SanitizeString(*p.ModelNumber, maxModelLen)
		input.ModelNumber = &model
	}
	if p.Room != nil {
		room := validators.SanitizeString(*p.Room, maxRoomLen)
		input.Room = &room
	}
	if p.ApplianceType != nil {
		appliance := validators.SanitizeString(*p.ApplianceType, maxApplianceLen)
		input.ApplianceType = &appliance
	}
	if p.Cost != nil {
		cost, err := parseMoneyField(*p.Cost, "cost")
		if err != nil {
			return partsvc.UpdatePartInput{}, err
		}
		input.Cost = &cost
	}
	return input, nil
}

func parseMoneyField(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return value, nil
}
