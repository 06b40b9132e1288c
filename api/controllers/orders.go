package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RoyceColton/Maintenance-Inventory-System/api/responses"
	"github.com/RoyceColton/Maintenance-Inventory-System/api/validators"
	ordersvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/orders"
	pkgerrors "github.com/RoyceColton/Maintenance-Inventory-System/pkg/errors"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

// RecordPurchase handles marking a part as purchased.
func RecordPurchase(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
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

		var payload recordPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.RecordPurchase(r.Context(), actorID, partID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// DeliverOrder handles receiving a pending order.
func DeliverOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.MarkDelivered(r.Context(), actorID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// EditOrder handles edits to a still-pending order.
func EditOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload editOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.EditPendingOrder(r.Context(), actorID, orderID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// CombinedOrders handles the purchasing dashboard view.
func CombinedOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		view, err := svc.Combined(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// PartOrderHistory handles listing one part's orders.
func PartOrderHistory(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		partID, err := validators.ParsePathUUID(chi.URLParam(r, "partID"), "partID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.ListForPart(r.Context(), partID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, history)
	}
}

type recordPurchaseRequest struct {
	Quantity          int     `json:"purchased_quantity" validate:"required,gt=0"`
	TotalCost         string  `json:"total_cost" validate:"required"`
	TrackingNumber    string  `json:"tracking_number,omitempty"`
	OrderDate         *string `json:"order_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EstimatedDelivery *string `json:"estimated_delivery,omitempty" validate:"omitempty,datetime=2006-01-02"`
	BudgetCategory    *string `json:"budget_category,omitempty"`
}

func (p recordPurchaseRequest) toInput() (ordersvc.RecordPurchaseInput, error) {
	cost, err := parseMoneyField(p.TotalCost, "total_cost")
	if err != nil {
		return ordersvc.RecordPurchaseInput{}, err
	}

	input := ordersvc.RecordPurchaseInput{
		Quantity:       p.Quantity,
		TotalCost:      cost,
		TrackingNumber: validators.SanitizeString(p.TrackingNumber, maxTrackingLen),
		BudgetCategory: p.BudgetCategory,
	}
	if p.OrderDate != nil {
		orderDate, err := validators.ParseDate(*p.OrderDate, "order_date")
		if err != nil {
			return ordersvc.RecordPurchaseInput{}, err
		}
		input.OrderDate = &orderDate
	}
	if p.EstimatedDelivery != nil {
		estimate, err := validators.ParseDate(*p.EstimatedDelivery, "estimated_delivery")
		if err != nil {
			return ordersvc.RecordPurchaseInput{}, err
		}
		input.EstimatedDelivery = &estimate
	}
	return input, nil
}

type editOrderRequest struct {
	Quantity          *int    `json:"purchased_quantity,omitempty" validate:"omitempty,gt=0"`
	TotalCost         *string `json:"total_cost,omitempty"`
	TrackingNumber    *string `json:"tracking_number,omitempty"`
	EstimatedDelivery *string `json:"estimated_delivery,omitempty" validate:"omitempty,datetime=2006-01-02"`
	BudgetCategory    *string `json:"budget_category,omitempty"`
}

func (p editOrderRequest) toInput() (ordersvc.EditOrderInput, error) {
	input := ordersvc.EditOrderInput{
		Quantity:       p.Quantity,
		TrackingNumber: p.TrackingNumber,
		BudgetCategory: p.BudgetCategory,
	}
	if p.TotalCost != nil {
		cost, err := parseMoneyField(*p.TotalCost, "total_cost")
		if err != nil {
			return ordersvc.EditOrderInput{}, err
		}
		input.TotalCost = &cost
	}
	if p.EstimatedDelivery != nil {
		estimate, err := validators.ParseDate(*p.EstimatedDelivery, "estimated_delivery")
		if err != nil {
			return ordersvc.EditOrderInput{}, err
		}
		input.EstimatedDelivery = &estimate
	}
	return input, nil
}
