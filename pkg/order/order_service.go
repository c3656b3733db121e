package order

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/internal/utils/mailing"
	"Storybrush-Backend/pkg/credit"
	"Storybrush-Backend/pkg/discount"
	"Storybrush-Backend/pkg/midtrans"
	"Storybrush-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	OrderService interface {
		Checkout(ctx context.Context, req domain.CheckoutRequest, userID string) (*domain.CheckoutResponse, error)
		// HandlePaymentNotification processes a gateway callback. The
		// reported status is never trusted: settlement is re-checked
		// against the gateway before any credits are granted.
		HandlePaymentNotification(ctx context.Context, orderID string) error
		VerifyOrder(ctx context.Context, orderID string) (*domain.OrderStatus, error)
		GetUserOrders(ctx context.Context, userID string) ([]*domain.OrderStatus, error)
	}

	orderService struct {
		orderRepository OrderRepository
		userRepository  user.UserRepository
		creditService   credit.CreditService
		discountService discount.DiscountService
		midtransService midtrans.MidtransService
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	userRepository user.UserRepository,
	creditService credit.CreditService,
	discountService discount.DiscountService,
	midtransService midtrans.MidtransService,
) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		userRepository:  userRepository,
		creditService:   creditService,
		discountService: discountService,
		midtransService: midtransService,
	}
}

func (s *orderService) Checkout(ctx context.Context, req domain.CheckoutRequest, userID string) (*domain.CheckoutResponse, error) {
	u, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Status == domain.UserStatusSuspended {
		return nil, domain.ErrUserSuspended
	}

	pkg := domain.CreditPackageByID(req.PackageID)
	if pkg == nil {
		return nil, domain.ErrInvalidCreditPackage
	}

	amount := pkg.Price
	if req.DiscountCode != "" {
		amount, err = s.discountService.Apply(ctx, req.DiscountCode, amount)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &entities.Order{
		ID:           "ORD-" + uuid.NewString(),
		UserID:       u.ID,
		PackageID:    pkg.ID,
		Credits:      pkg.Credits,
		Amount:       amount,
		Currency:     pkg.Currency,
		DiscountCode: req.DiscountCode,
		Status:       domain.OrderStatusPending,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	// The order is persisted before the gateway call so an unreachable
	// gateway leaves a Pending order behind for the verify endpoint.
	if err := s.orderRepository.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	payment, err := s.midtransService.CreateTransaction(ctx, domain.MidtransPaymentRequest{
		OrderID: order.ID,
		Amount:  int64(amount),
		Email:   u.Email,
		Name:    u.Name,
	})
	if err != nil {
		log.Errorf("checkout: gateway transaction failed for order=%s: %v", order.ID, err)
		return nil, domain.ErrPaymentFailed
	}

	return &domain.CheckoutResponse{
		OrderID:    order.ID,
		Amount:     amount,
		Currency:   order.Currency,
		InvoiceURL: payment.InvoiceURL,
	}, nil
}

func (s *orderService) HandlePaymentNotification(ctx context.Context, orderID string) error {
	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.ErrInvalidOrder
	}

	status, err := s.midtransService.CheckTransaction(ctx, orderID)
	if err != nil {
		return domain.ErrPaymentNotVerified
	}

	return s.settleOrder(ctx, order, status)
}

func (s *orderService) VerifyOrder(ctx context.Context, orderID string) (*domain.OrderStatus, error) {
	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, domain.ErrInvalidOrder
	}

	if order.Status == domain.OrderStatusPending {
		status, err := s.midtransService.CheckTransaction(ctx, orderID)
		if err != nil {
			// Gateway unreachable: the order simply stays Pending and the
			// status page keeps polling.
			log.Errorf("verify order: gateway check failed for order=%s: %v", orderID, err)
		} else if err := s.settleOrder(ctx, order, status); err != nil {
			return nil, err
		}

		order, err = s.orderRepository.GetOrderByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
	}

	return &domain.OrderStatus{
		OrderID:    order.ID,
		Status:     order.Status,
		Credits:    order.Credits,
		PaymentRef: order.PaymentRef,
		PaidAt:     order.PaidAt,
	}, nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string) ([]*domain.OrderStatus, error) {
	orders, err := s.orderRepository.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.OrderStatus, 0, len(orders))
	for _, o := range orders {
		result = append(result, &domain.OrderStatus{
			OrderID:    o.ID,
			Status:     o.Status,
			Credits:    o.Credits,
			PaymentRef: o.PaymentRef,
			PaidAt:     o.PaidAt,
		})
	}
	return result, nil
}

// settleOrder applies a verified gateway status to the order state
// machine: Pending -> Paid or Pending -> Failed, both terminal. The
// transition itself is a single atomic step in the repository, so of any
// number of concurrent callbacks for the same order exactly one wins it;
// credits are granted only by the winner.
func (s *orderService) settleOrder(ctx context.Context, order *entities.Order, status *domain.MidtransTransactionStatus) error {
	var target string
	switch status.Status {
	case "settlement", "capture":
		if status.FraudStatus != "" && status.FraudStatus != "accept" {
			return nil
		}
		target = domain.OrderStatusPaid
	case "deny", "cancel", "expire":
		target = domain.OrderStatusFailed
	default:
		// Still pending on the gateway side
		return nil
	}

	settled, err := s.orderRepository.SettlePendingOrder(ctx, order.ID, target, status.TransactionID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderAlreadySettled) {
			log.Infof("order %s already settled, ignoring duplicate notification", order.ID)
			return nil
		}
		return err
	}

	if target != domain.OrderStatusPaid {
		return nil
	}

	userID := settled.UserID.String()
	if _, err := s.creditService.Add(ctx, userID, settled.Credits, "purchase "+settled.ID); err != nil {
		return err
	}
	if err := s.userRepository.AddTotalSpent(ctx, userID, settled.Amount); err != nil {
		log.Errorf("order %s: total spent update failed: %v", settled.ID, err)
	}

	s.sendReceiptEmail(ctx, settled)
	return nil
}

func (s *orderService) sendReceiptEmail(ctx context.Context, order *entities.Order) {
	u, err := s.userRepository.GetUserByID(ctx, order.UserID.String())
	if err != nil {
		log.Errorf("order %s: receipt email skipped: %v", order.ID, err)
		return
	}

	subject := fmt.Sprintf("Your Storybrush receipt for %s", order.ID)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your purchase! %d credits have been added to your "+
			"account. Order %s, total %.0f %s.</p>",
		u.Name, order.Credits, order.ID, order.Amount, order.Currency,
	)

	entry := &entities.EmailLog{
		ID:      uuid.New(),
		To:      u.Email,
		Subject: subject,
		Kind:    "Receipt",
		Status:  "Sent",
		SentAt:  time.Now(),
	}
	if err := mailing.SendMail(u.Email, subject, body); err != nil {
		log.Errorf("order %s: receipt email failed: %v", order.ID, err)
		entry.Status = "Failed"
		entry.Error = err.Error()
	}
	if err := s.userRepository.AppendEmailLog(ctx, entry); err != nil {
		log.Errorf("order %s: email log append failed: %v", order.ID, err)
	}
}
