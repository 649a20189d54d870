package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/teastore-backend/api/middleware"
	"github.com/angelmondragon/teastore-backend/internal/orders"
	"github.com/angelmondragon/teastore-backend/internal/permissions"
)

type recordingOrderService struct {
	orders.Service
	listInput   orders.ListOrdersInput
	createInput orders.CreateOrderInput
	updateInput orders.UpdateOrderInput
	itemInput   orders.CreateOrderItemInput
	actor       permissions.Principal
}

func (s *recordingOrderService) ListOrders(ctx context.Context, actor permissions.Principal, input orders.ListOrdersInput) ([]orders.OrderDTO, error) {
	s.actor = actor
	s.listInput = input
	return []orders.OrderDTO{}, nil
}

func (s *recordingOrderService) CreateOrder(ctx context.Context, actor permissions.Principal, input orders.CreateOrderInput) (*orders.OrderDTO, error) {
	s.actor = actor
	s.createInput = input
	return &orders.OrderDTO{ID: uuid.New()}, nil
}

func (s *recordingOrderService) UpdateOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID, input orders.UpdateOrderInput) (*orders.OrderDTO, error) {
	s.updateInput = input
	return &orders.OrderDTO{ID: id}, nil
}

func (s *recordingOrderService) CreateItem(ctx context.Context, actor permissions.Principal, input orders.CreateOrderItemInput) (*orders.OrderItemDTO, error) {
	s.itemInput = input
	return &orders.OrderItemDTO{ID: uuid.New()}, nil
}

func asCaller(req *http.Request) *http.Request {
	p := permissions.Principal{UserID: uuid.New(), Username: "alice", IsActive: true}
	return req.WithContext(middleware.WithPrincipal(req.Context(), p))
}

func TestOrdersRequirePrincipal(t *testing.T) {
	rec := httptest.NewRecorder()
	OrdersList(&recordingOrderService{}, false, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrdersMyListsOwnOnly(t *testing.T) {
	svc := &recordingOrderService{}
	rec := httptest.NewRecorder()
	OrdersList(svc, true, nil).ServeHTTP(rec, asCaller(httptest.NewRequest(http.MethodGet, "/api/v1/orders/my?status=paid", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.listInput.Mine)
	assert.Equal(t, "paid", svc.listInput.Status.String())
	assert.Equal(t, "alice", svc.actor.Username)
}

func TestOrdersCreateParsesDeliveryDate(t *testing.T) {
	svc := &recordingOrderService{}
	rec := httptest.NewRecorder()
	req := asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/orders/", bytes.NewBufferString(`{"delivery_date":"2030-01-02","note":"gift"}`)))
	OrdersCreate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.createInput.DeliveryDate)
	assert.Equal(t, "2030-01-02", svc.createInput.DeliveryDate.Format(orders.DateLayout))
	assert.Equal(t, "gift", svc.createInput.Note)
}

func TestOrdersCreateRejectsBadDate(t *testing.T) {
	rec := httptest.NewRecorder()
	req := asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/orders/", bytes.NewBufferString(`{"delivery_date":"tomorrow"}`)))
	OrdersCreate(&recordingOrderService{}, nil).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"delivery_date"`)
}

func TestOrdersPatchClearsDeliveryDateOnNull(t *testing.T) {
	svc := &recordingOrderService{}
	id := uuid.NewString()
	rec := httptest.NewRecorder()
	req := asCaller(withID(httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+id, bytes.NewBufferString(`{"delivery_date":null}`)), id))
	OrdersUpdate(svc, true, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.updateInput.ClearDeliveryDate)
	assert.Nil(t, svc.updateInput.Note)
	assert.Nil(t, svc.updateInput.Status)
}

func TestOrderItemsCreateRejectsZeroQuantity(t *testing.T) {
	svc := &recordingOrderService{}
	body := `{"order_id":"` + uuid.NewString() + `","tea_id":"` + uuid.NewString() + `","quantity":0}`
	rec := httptest.NewRecorder()
	OrderItemsCreate(svc, nil).ServeHTTP(rec, asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/order-items/", bytes.NewBufferString(body))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity must be greater than 0.")
	assert.Equal(t, uuid.Nil, svc.itemInput.OrderID)
}

func TestOrderItemsCreatePassesUnitPrice(t *testing.T) {
	svc := &recordingOrderService{}
	body := `{"order_id":"` + uuid.NewString() + `","tea_id":"` + uuid.NewString() + `","quantity":2,"unit_price":"9.99"}`
	rec := httptest.NewRecorder()
	OrderItemsCreate(svc, nil).ServeHTTP(rec, asCaller(httptest.NewRequest(http.MethodPost, "/api/v1/order-items/", bytes.NewBufferString(body))))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.itemInput.UnitPrice)
	assert.Equal(t, "9.99", svc.itemInput.UnitPrice.String())
	assert.Equal(t, 2, svc.itemInput.Quantity)
}
