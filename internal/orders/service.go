package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/teastore-backend/internal/permissions"
	"github.com/angelmondragon/teastore-backend/internal/rules"
	"github.com/angelmondragon/teastore-backend/pkg/db"
	"github.com/angelmondragon/teastore-backend/pkg/db/models"
	"github.com/angelmondragon/teastore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/teastore-backend/pkg/errors"
	"github.com/angelmondragon/teastore-backend/pkg/i18n"
)

// Service exposes orders and order lines with row-level ownership applied.
// Rows the actor may not see are reported as not found.
type Service interface {
	ListOrders(ctx context.Context, actor permissions.Principal, input ListOrdersInput) ([]OrderDTO, error)
	GetOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*OrderDTO, error)
	CreateOrder(ctx context.Context, actor permissions.Principal, input CreateOrderInput) (*OrderDTO, error)
	UpdateOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID, input UpdateOrderInput) (*OrderDTO, error)
	DeleteOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID) error

	ListItems(ctx context.Context, actor permissions.Principal, input ListOrderItemsInput) ([]OrderItemDTO, error)
	GetItem(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*OrderItemDTO, error)
	CreateItem(ctx context.Context, actor permissions.Principal, input CreateOrderItemInput) (*OrderItemDTO, error)
	UpdateItem(ctx context.Context, actor permissions.Principal, id uuid.UUID, input UpdateOrderItemInput) (*OrderItemDTO, error)
	DeleteItem(ctx context.Context, actor permissions.Principal, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService constructs the order service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) ListOrders(ctx context.Context, actor permissions.Principal, input ListOrdersInput) ([]OrderDTO, error) {
	filter := OrderFilter{Status: input.Status}
	if input.Mine || !actor.IsPrivileged() {
		owner := actor.UserID
		filter.UserID = &owner
	}
	rows, err := s.repo.ListOrders(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return FromModel(order), nil
}

// CreateOrder binds the actor as owner. Privileged actors may name another
// owner and an initial status.
func (s *service) CreateOrder(ctx context.Context, actor permissions.Principal, input CreateOrderInput) (*OrderDTO, error) {
	order := &models.Order{
		UserID:       actor.UserID,
		Status:       enums.OrderStatusNew,
		DeliveryDate: normalizeDate(input.DeliveryDate),
		Note:         strings.TrimSpace(input.Note),
	}

	problems := rules.Problems{}
	if actor.IsPrivileged() {
		if input.UserID != nil {
			order.UserID = *input.UserID
		}
		if input.Status != nil {
			order.Status = *input.Status
		}
	}
	problems.Check(order.Status.IsValid(), "status", i18n.MsgStatusInvalid)
	if order.DeliveryDate != nil {
		problems.Check(rules.NotBefore(*order.DeliveryDate, s.now().UTC()), "delivery_date", i18n.MsgDeliveryDatePast)
	}
	if order.UserID != actor.UserID {
		ok, err := s.repo.UserExists(ctx, order.UserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user")
		}
		problems.Check(ok, "user_id", i18n.MsgUserUnknown)
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.Validation("user_id", i18n.MsgUserUnknown)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return s.GetOrder(ctx, actor, order.ID)
}

// UpdateOrder changes an order. Only privileged actors may change status or
// reassign the owner.
func (s *service) UpdateOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID, input UpdateOrderInput) (*OrderDTO, error) {
	order, err := s.visibleOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsPrivileged() {
		if input.Status != nil && *input.Status != order.Status {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, i18n.MsgEditOrderDenied)
		}
		if input.UserID != nil && *input.UserID != order.UserID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, i18n.MsgEditOrderDenied)
		}
	}

	problems := rules.Problems{}
	if input.UserID != nil && *input.UserID != order.UserID {
		ok, err := s.repo.UserExists(ctx, *input.UserID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user")
		}
		problems.Check(ok, "user_id", i18n.MsgUserUnknown)
		order.UserID = *input.UserID
	}
	if input.Status != nil {
		problems.Check(input.Status.IsValid(), "status", i18n.MsgStatusInvalid)
		order.Status = *input.Status
	}
	switch {
	case input.ClearDeliveryDate:
		order.DeliveryDate = nil
	case input.DeliveryDate != nil:
		order.DeliveryDate = normalizeDate(input.DeliveryDate)
		problems.Check(rules.NotBefore(*order.DeliveryDate, s.now().UTC()), "delivery_date", i18n.MsgDeliveryDatePast)
	}
	if input.Note != nil {
		order.Note = strings.TrimSpace(*input.Note)
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	return s.GetOrder(ctx, actor, id)
}

// DeleteOrder removes the order together with its lines.
func (s *service) DeleteOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID) error {
	if _, err := s.visibleOrder(ctx, actor, id); err != nil {
		return err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteOrderItems(ctx, id); err != nil {
			return err
		}
		return repo.DeleteOrder(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func (s *service) ListItems(ctx context.Context, actor permissions.Principal, input ListOrderItemsInput) ([]OrderItemDTO, error) {
	filter := ItemFilter{OrderID: input.OrderID}
	if !actor.IsPrivileged() {
		owner := actor.UserID
		filter.OwnerID = &owner
	}
	rows, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}
	out := make([]OrderItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *ItemFromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) GetItem(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*OrderItemDTO, error) {
	item, err := s.visibleItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ItemFromModel(item), nil
}

// CreateItem adds a line to an order. The unit price is copied from the tea
// unless a privileged actor supplies one.
func (s *service) CreateItem(ctx context.Context, actor permissions.Principal, input CreateOrderItemInput) (*OrderItemDTO, error) {
	order, err := s.targetOrder(ctx, actor, input.OrderID)
	if err != nil {
		return nil, err
	}

	problems := rules.Problems{}
	problems.Check(input.Quantity > 0, "quantity", i18n.MsgQuantityPositive)
	problems.Check(rules.FitsCount(input.Quantity), "quantity", i18n.MsgValueTooLarge)
	tea, err := s.findTea(ctx, input.TeaID)
	if err != nil {
		return nil, err
	}
	problems.Check(tea != nil, "tea_id", i18n.MsgTeaUnknown)

	item := &models.OrderItem{OrderID: order.ID, TeaID: input.TeaID, Quantity: input.Quantity}
	if tea != nil {
		item.UnitPrice = tea.Price
	}
	if actor.IsPrivileged() && input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
		problems.Check(rules.MoneyScale(item.UnitPrice), "unit_price", i18n.MsgDecimalPlaces)
		problems.Check(rules.PositivePrice(item.UnitPrice), "unit_price", i18n.MsgUnitPricePositive)
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueLine(ctx, item); err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, translateItemWriteError(err)
	}
	return s.GetItem(ctx, actor, item.ID)
}

// UpdateItem changes a line. Changing the tea copies the new tea's price.
// Non-privileged actors may not set the unit price directly.
func (s *service) UpdateItem(ctx context.Context, actor permissions.Principal, id uuid.UUID, input UpdateOrderItemInput) (*OrderItemDTO, error) {
	item, err := s.visibleItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsPrivileged() && input.UnitPrice != nil && !input.UnitPrice.Equal(item.UnitPrice) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, i18n.MsgEditItemDenied)
	}

	if input.OrderID != nil && *input.OrderID != item.OrderID {
		if _, err := s.targetOrder(ctx, actor, *input.OrderID); err != nil {
			return nil, err
		}
		item.OrderID = *input.OrderID
	}

	problems := rules.Problems{}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
		problems.Check(item.Quantity > 0, "quantity", i18n.MsgQuantityPositive)
		problems.Check(rules.FitsCount(item.Quantity), "quantity", i18n.MsgValueTooLarge)
	}
	if input.TeaID != nil && *input.TeaID != item.TeaID {
		tea, err := s.findTea(ctx, *input.TeaID)
		if err != nil {
			return nil, err
		}
		problems.Check(tea != nil, "tea_id", i18n.MsgTeaUnknown)
		item.TeaID = *input.TeaID
		item.Tea = nil
		if tea != nil {
			item.UnitPrice = tea.Price
		}
	}
	if actor.IsPrivileged() && input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
		problems.Check(rules.MoneyScale(item.UnitPrice), "unit_price", i18n.MsgDecimalPlaces)
		problems.Check(rules.PositivePrice(item.UnitPrice), "unit_price", i18n.MsgUnitPricePositive)
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueLine(ctx, item); err != nil {
		return nil, err
	}

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, translateItemWriteError(err)
	}
	return s.GetItem(ctx, actor, id)
}

func (s *service) DeleteItem(ctx context.Context, actor permissions.Principal, id uuid.UUID) error {
	if _, err := s.visibleItem(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order item")
	}
	return nil
}

func (s *service) visibleOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !actor.CanSee(order.UserID) {
		return nil, notFound()
	}
	return order, nil
}

func (s *service) visibleItem(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*models.OrderItem, error) {
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, notFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
	}
	if _, err := s.visibleOrder(ctx, actor, item.OrderID); err != nil {
		return nil, err
	}
	return item, nil
}

// targetOrder loads the order a line is being attached to. A missing order is
// a field error; someone else's order is forbidden for non-privileged actors.
func (s *service) targetOrder(ctx context.Context, actor permissions.Principal, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Validation("order_id", i18n.MsgOrderUnknown)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !actor.CanSee(order.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, i18n.MsgForeignOrderItem)
	}
	return order, nil
}

func (s *service) findTea(ctx context.Context, id uuid.UUID) (*models.Tea, error) {
	tea, err := s.repo.FindTea(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tea")
	}
	return tea, nil
}

func (s *service) ensureUniqueLine(ctx context.Context, item *models.OrderItem) error {
	exists, err := s.repo.ItemExists(ctx, item.OrderID, item.TeaID, item.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check order item")
	}
	if exists {
		return duplicateLine()
	}
	return nil
}

func translateItemWriteError(err error) error {
	switch {
	case db.IsUniqueViolation(err, uniqueLineConstraint):
		return duplicateLine()
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Validation("tea_id", i18n.MsgTeaUnknown)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order item")
}

const uniqueLineConstraint = "order_items_order_tea_key"

func duplicateLine() error {
	return pkgerrors.Validation("tea_id", i18n.MsgDuplicateOrderItem)
}

func notFound() error {
	return pkgerrors.New(pkgerrors.CodeNotFound, i18n.MsgNotFound)
}

func normalizeDate(day *time.Time) *time.Time {
	if day == nil {
		return nil
	}
	y, m, d := day.Date()
	normalized := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &normalized
}
