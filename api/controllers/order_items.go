package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/teastore-backend/api/responses"
	"github.com/angelmondragon/teastore-backend/api/validators"
	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/pkg/logger"
)

type orderItemRequest struct {
	OrderID   uuid.UUID        `json:"order_id"`
	TeaID     uuid.UUID        `json:"tea_id"`
	Quantity  int              `json:"quantity" validate:"gt=0,lte=2147483647"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

type orderItemPatchRequest struct {
	OrderID   *uuid.UUID       `json:"order_id"`
	TeaID     *uuid.UUID       `json:"tea_id"`
	Quantity  *int             `json:"quantity" validate:"omitempty,gt=0,lte=2147483647"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// OrderItemsList accepts an optional ?order= filter.
func OrderItemsList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := validators.ParseQueryUUID(r, "order")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListItems(r.Context(), actor, orders.ListOrderItemsInput{OrderID: orderID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func OrderItemsGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.GetItem(r.Context(), actor, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func OrderItemsCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body orderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		row, err := svc.CreateItem(r.Context(), actor, orders.CreateOrderItemInput{
			OrderID:   body.OrderID,
			TeaID:     body.TeaID,
			Quantity:  body.Quantity,
			UnitPrice: body.UnitPrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

func OrderItemsUpdate(svc orders.Service, partial bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input orders.UpdateOrderItemInput
		if partial {
			var body orderItemPatchRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = orders.UpdateOrderItemInput(body)
		} else {
			var body orderItemRequest
			if err := validators.DecodeJSONBody(r, &body); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input = orders.UpdateOrderItemInput{
				OrderID:   &body.OrderID,
				TeaID:     &body.TeaID,
				Quantity:  &body.Quantity,
				UnitPrice: body.UnitPrice,
			}
		}

		row, err := svc.UpdateItem(r.Context(), actor, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

func OrderItemsDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			unavailable(w, r, logg, "order")
			return
		}
		actor, err := principalFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteItem(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
