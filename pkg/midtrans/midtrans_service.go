package midtrans

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/internal/utils"
	"context"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	// MidtransService wraps the payment gateway SDK. Orders are created
	// through Snap; settlement is always verified server-side through the
	// core API before any credits move.
	MidtransService interface {
		CreateTransaction(ctx context.Context, req domain.MidtransPaymentRequest) (*domain.MidtransPaymentResponse, error)
		CheckTransaction(ctx context.Context, orderID string) (*domain.MidtransTransactionStatus, error)
	}

	midtransService struct {
		snapClient snap.Client
		coreClient coreapi.Client
	}
)

func NewMidtransService() MidtransService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}
	serverKey := utils.GetConfig("SERVER_KEY")

	s := snap.Client{}
	s.New(serverKey, env)

	c := coreapi.Client{}
	c.New(serverKey, env)

	return &midtransService{
		snapClient: s,
		coreClient: c,
	}
}

func (s *midtransService) CreateTransaction(ctx context.Context, req domain.MidtransPaymentRequest) (*domain.MidtransPaymentResponse, error) {
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.Name,
			Email: req.Email,
		},
	}

	resp, err := s.snapClient.CreateTransaction(snapReq)
	if err != nil {
		return nil, domain.ErrPaymentFailed
	}

	return &domain.MidtransPaymentResponse{
		Token:      resp.Token,
		InvoiceURL: resp.RedirectURL,
	}, nil
}

func (s *midtransService) CheckTransaction(ctx context.Context, orderID string) (*domain.MidtransTransactionStatus, error) {
	resp, err := s.coreClient.CheckTransaction(orderID)
	if err != nil {
		return nil, domain.ErrPaymentNotVerified
	}

	return &domain.MidtransTransactionStatus{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
		FraudStatus:   resp.FraudStatus,
	}, nil
}
