package order

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/filedb"
	"context"
	"time"
)

type (
	OrderRepository interface {
		CreateOrder(ctx context.Context, order *entities.Order) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		// SettlePendingOrder moves an order out of Pending as one step
		// under the store lock. Concurrent callbacks for the same order
		// race on this transition; exactly one wins, the rest get
		// ErrOrderAlreadySettled.
		SettlePendingOrder(ctx context.Context, id, status, paymentRef string) (*entities.Order, error)
		GetUserOrders(ctx context.Context, userID string) ([]*entities.Order, error)
	}

	orderRepository struct {
		store *filedb.Store
	}
)

func NewOrderRepository(store *filedb.Store) OrderRepository {
	return &orderRepository{
		store: store,
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.store.Update(func(d *filedb.Data) error {
		d.Orders = append(d.Orders, order)
		return nil
	})
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var found *entities.Order
	err := r.store.View(func(d *filedb.Data) error {
		for _, o := range d.Orders {
			if o.ID == id {
				clone := *o
				found = &clone
				return nil
			}
		}
		return domain.ErrInvalidOrder
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *orderRepository) SettlePendingOrder(ctx context.Context, id, status, paymentRef string) (*entities.Order, error) {
	var settled *entities.Order
	err := r.store.Update(func(d *filedb.Data) error {
		for _, o := range d.Orders {
			if o.ID != id {
				continue
			}
			if o.Status != domain.OrderStatusPending {
				return domain.ErrOrderAlreadySettled
			}
			now := time.Now()
			o.Status = status
			o.PaymentRef = paymentRef
			if status == domain.OrderStatusPaid {
				o.PaidAt = &now
			}
			o.UpdatedAt = now
			clone := *o
			settled = &clone
			return nil
		}
		return domain.ErrInvalidOrder
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

func (r *orderRepository) GetUserOrders(ctx context.Context, userID string) ([]*entities.Order, error) {
	var orders []*entities.Order
	err := r.store.View(func(d *filedb.Data) error {
		for _, o := range d.Orders {
			if o.UserID.String() == userID {
				clone := *o
				orders = append(orders, &clone)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
