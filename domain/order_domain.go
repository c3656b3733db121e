package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCheckout    = "checkout created successfully"
	MessageSuccessVerifyOrder = "order verified successfully"
	MessageSuccessWebhook     = "payment notification processed"
	MessageSuccessGetOrders   = "orders retrieved successfully"

	MessageFailedCheckout    = "failed to create checkout"
	MessageFailedVerifyOrder = "failed to verify order"
	MessageFailedWebhook     = "failed to process payment notification"
	MessageFailedGetOrders   = "failed to retrieve orders"

	ErrInvalidOrder        = errors.New("invalid order")
	ErrPaymentNotVerified  = errors.New("payment not verified")
	ErrPaymentFailed       = errors.New("payment processing failed")
	ErrOrderAlreadySettled = errors.New("order already settled")
)

const (
	OrderStatusPending = "Pending"
	OrderStatusPaid    = "Paid"
	OrderStatusFailed  = "Failed"
)

type (
	CheckoutRequest struct {
		PackageID    string `json:"package_id" validate:"required"`
		DiscountCode string `json:"discount_code" validate:"omitempty,min=3,max=32"`
	}

	CheckoutResponse struct {
		OrderID    string  `json:"order_id"`
		Amount     float64 `json:"amount"`
		Currency   string  `json:"currency"`
		InvoiceURL string  `json:"invoice_url"`
	}

	OrderStatus struct {
		OrderID    string     `json:"order_id"`
		Status     string     `json:"status"`
		Credits    int        `json:"credits"`
		PaymentRef string     `json:"payment_ref,omitempty"`
		PaidAt     *time.Time `json:"paid_at,omitempty"`
	}

	MidtransPaymentRequest struct {
		OrderID string
		Amount  int64
		Email   string
		Name    string
	}

	MidtransPaymentResponse struct {
		Token      string
		InvoiceURL string
	}

	MidtransTransactionStatus struct {
		OrderID       string
		TransactionID string
		Status        string // settlement, capture, pending, deny, cancel, expire
		FraudStatus   string
	}
)
