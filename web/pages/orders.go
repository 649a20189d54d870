package pages

import (
	"net/http"

	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
	"github.com/angelmondragon/teastore-backend/internal/teas"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

func addPerm(entity string) string {
	return permissions.Codename(enums.PermissionActionAdd, entity)
}

type orderFormData struct {
	Users    []models.User
	Statuses []enums.OrderStatus
}

type itemFormData struct {
	Orders []orders.OrderDTO
	Teas   []teas.TeaDTO
}

func (h *Handler) orderList(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityOrder)) {
		return
	}
	rows, err := h.deps.Orders.ListOrders(r.Context(), principal(r), orders.ListOrdersInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "order_list", view{Title: "Orders", Data: rows})
}

func (h *Handler) orderDetail(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityOrder)) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	order, err := h.deps.Orders.GetOrder(r.Context(), principal(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "order_detail", view{Title: "Orders", Data: order})
}

func (h *Handler) orderNew(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, addPerm(permissions.EntityOrder)) {
		return
	}
	h.renderOrderForm(w, r, http.StatusOK, view{})
}

// renderOrderForm offers the owner and status pickers to staff only; everyone
// else always orders for themselves in status new.
func (h *Handler) renderOrderForm(w http.ResponseWriter, r *http.Request, status int, v view) {
	data := orderFormData{}
	if principal(r).IsPrivileged() {
		data.Statuses = enums.OrderStatuses()
		if h.deps.Users != nil {
			users, err := h.deps.Users.ListActive(r.Context())
			if err != nil {
				h.fail(w, r, err)
				return
			}
			data.Users = users
		}
	}
	v.Title = "Orders"
	v.Data = data
	h.render(w, r, status, "order_form", v)
}

func (h *Handler) orderCreate(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, addPerm(permissions.EntityOrder)) {
		return
	}
	form, err := readForm(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
		return
	}
	actor := principal(r)
	input := orders.CreateOrderInput{
		DeliveryDate: form.date("delivery_date"),
		Note:         form.text("note"),
	}
	if actor.IsPrivileged() {
		input.UserID = form.uuid("user_id", false)
		if raw := form.text("status"); raw != "" {
			status := enums.OrderStatus(raw)
			input.Status = &status
		}
	}

	err = form.err()
	if err == nil {
		_, err = h.deps.Orders.CreateOrder(r.Context(), actor, input)
	}
	if err != nil {
		if problems, ok := formErrors(r.Context(), err); ok {
			h.renderOrderForm(w, r, http.StatusBadRequest, view{Form: form.values, Errors: problems})
			return
		}
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) orderDelete(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err := h.deps.Orders.DeleteOrder(r.Context(), principal(r), id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) itemList(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityOrderItem)) {
		return
	}
	rows, err := h.deps.Orders.ListItems(r.Context(), principal(r), orders.ListOrderItemsInput{})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "item_list", view{Title: "Order items", Data: rows})
}

func (h *Handler) itemDetail(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, viewPerm(permissions.EntityOrderItem)) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	item, err := h.deps.Orders.GetItem(r.Context(), principal(r), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "item_detail", view{Title: "Order items", Data: item})
}

func (h *Handler) itemNew(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, addPerm(permissions.EntityOrderItem)) {
		return
	}
	h.renderItemForm(w, r, http.StatusOK, view{})
}

// renderItemForm lists only orders the caller may add lines to.
func (h *Handler) renderItemForm(w http.ResponseWriter, r *http.Request, status int, v view) {
	actor := principal(r)
	ords, err := h.deps.Orders.ListOrders(r.Context(), actor, orders.ListOrdersInput{Mine: !actor.IsPrivileged()})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	active := true
	available, err := h.deps.Teas.List(r.Context(), teas.ListTeasInput{IsActive: &active})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	v.Title = "Order items"
	v.Data = itemFormData{Orders: ords, Teas: available}
	h.render(w, r, status, "item_form", v)
}

// itemCreate always snapshots the tea's current price as the unit price.
func (h *Handler) itemCreate(w http.ResponseWriter, r *http.Request) {
	if !h.allowed(w, r, addPerm(permissions.EntityOrderItem)) {
		return
	}
	form, err := readForm(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, i18n.MsgValidationFailed)
		return
	}
	input := orders.CreateOrderItemInput{Quantity: form.integer("quantity")}
	if id := form.uuid("order_id", true); id != nil {
		input.OrderID = *id
	}
	if id := form.uuid("tea_id", true); id != nil {
		input.TeaID = *id
	}

	err = form.err()
	if err == nil {
		_, err = h.deps.Orders.CreateItem(r.Context(), principal(r), input)
	}
	if err != nil {
		if problems, ok := formErrors(r.Context(), err); ok {
			h.renderItemForm(w, r, http.StatusBadRequest, view{Form: form.values, Errors: problems})
			return
		}
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/order-items", http.StatusSeeOther)
}

func (h *Handler) itemDelete(w http.ResponseWriter, r *http.Request) {
	if !h.staffOnly(w, r) {
		return
	}
	id, ok := routeID(r)
	if !ok {
		h.renderError(w, r, http.StatusNotFound, i18n.MsgNotFound)
		return
	}
	if err := h.deps.Orders.DeleteItem(r.Context(), principal(r), id); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/order-items", http.StatusSeeOther)
}
