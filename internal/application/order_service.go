package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	"github.com/kumawatvinit/ShopSpot/internal/infrastructure/payment"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
	"github.com/kumawatvinit/ShopSpot/pkg/mailer"
)

// PaymentGateway is the slice of the gateway client the order flow needs.
type PaymentGateway interface {
	ClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, amountCents int64, nonce string) (*payment.Transaction, error)
}

// OrderService settles payments and tracks orders. Settlement is a single
// synchronous call; its failure is returned as a structured ErrPaymentFailed
// and no order is recorded.
type OrderService struct {
	Orders      repository.OrderRepository
	Products    repository.ProductRepository
	Users       repository.UserRepository
	Gateway     PaymentGateway
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, gw PaymentGateway, logger *logrus.Logger) *OrderService {
	return &OrderService{Orders: orders, Products: products, Users: users, Gateway: gw, Logger: logger}
}

// CartLine is one product reference plus count, as submitted by the client.
type CartLine struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

// ClientToken proxies the gateway's client-token call.
func (s *OrderService) ClientToken(ctx context.Context) (string, error) {
	return s.Gateway.ClientToken(ctx)
}

// Checkout prices the cart from current product records, settles the total
// through the gateway, and records the order as Pending. The total is always
// computed server-side; client-submitted prices are ignored.
func (s *OrderService) Checkout(ctx context.Context, buyerID, nonce string, lines []CartLine) (*entity.Order, error) {
	if nonce == "" {
		return nil, invalid("Payment nonce is required")
	}
	if len(lines) == 0 {
		return nil, invalid("Cart is empty")
	}

	var total int64
	orderLines := make([]entity.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Count <= 0 {
			return nil, invalid("Product count must be positive")
		}
		p, err := s.Products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		total += p.PriceCents * int64(line.Count)
		orderLines = append(orderLines, entity.OrderLine{ProductID: p.ID, Count: line.Count})
	}

	tx, err := s.Gateway.Sale(ctx, total, nonce)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("buyer_id", buyerID).Warn("payment settlement failed")
		}
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	snapshot, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}

	o := &entity.Order{
		BuyerID: buyerID,
		Lines:   orderLines,
		Payment: snapshot,
		Status:  entity.OrderPending,
	}
	if err := s.Orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.sendConfirmation(ctx, o, total)
	return o, nil
}

func (s *OrderService) sendConfirmation(ctx context.Context, o *entity.Order, totalCents int64) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	buyer, err := s.Users.GetByID(ctx, o.BuyerID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("buyer_id", o.BuyerID).Warn("confirmation email skipped")
		}
		return
	}
	job := mailer.EmailJob{
		To:       buyer.Email,
		Template: mailer.TemplateOrderConfirmation,
		Data: map[string]any{
			"Name":    buyer.Name,
			"OrderID": o.ID,
			"Total":   fmt.Sprintf("$%.2f", float64(totalCents)/100),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("order_id", o.ID).Warn("confirmation enqueue failed")
	}
}

// BuyerOrders lists the caller's orders, newest first.
func (s *OrderService) BuyerOrders(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	return s.Orders.ListByBuyer(ctx, buyerID)
}

// AllOrders lists every order, newest first.
func (s *OrderService) AllOrders(ctx context.Context) ([]*entity.Order, error) {
	return s.Orders.List(ctx)
}

// UpdateStatus moves an order to a new status. The value must be a
// recognized status; anything else is rejected before touching the store.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, invalid("Status must be one of: Pending, Processing, Shipped, Delivered, Cancelled")
	}
	o, err := s.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}
