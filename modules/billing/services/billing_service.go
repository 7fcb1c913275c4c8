package services

import (
	"context"
	"encoding/json"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/domain/aggregates/payment"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/infrastructure/gateway"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/eventbus"
)

// planPrices maps a purchasable plan to its price in minor units.
var planPrices = map[string]struct {
	Amount   int64
	Currency string
}{
	string(user.PlanPro): {Amount: 49900, Currency: "INR"},
}

// Gateway is the slice of the payment gateway client the service needs.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
	VerifyWebhook(rawBody []byte, signature string) bool
}

// PlanUpgrader applies a purchased plan to the paying account.
type PlanUpgrader interface {
	UpgradePlan(ctx context.Context, id uuid.UUID, plan user.Plan) (user.User, error)
}

type VerifyPaymentDTO struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

type BillingService struct {
	orders    payment.Repository
	gateway   Gateway
	upgrader  PlanUpgrader
	publisher eventbus.EventBus
}

func NewBillingService(
	orders payment.Repository,
	gw Gateway,
	upgrader PlanUpgrader,
	publisher eventbus.EventBus,
) *BillingService {
	return &BillingService{
		orders:    orders,
		gateway:   gw,
		upgrader:  upgrader,
		publisher: publisher,
	}
}

func (s *BillingService) CreateOrder(ctx context.Context, userID uuid.UUID, plan string) (*payment.Order, error) {
	price, ok := planPrices[plan]
	if !ok {
		return nil, payment.ErrUnknownPlan
	}

	o := payment.NewOrder(userID, "", plan, price.Amount, price.Currency)
	gw, err := s.gateway.CreateOrder(ctx, price.Amount, price.Currency, o.ID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to create gateway order")
	}
	o.GatewayOrderID = gw.ID

	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// VerifyPayment settles an order from the checkout callback. A replayed
// callback for an already paid order succeeds without side effects.
func (s *BillingService) VerifyPayment(ctx context.Context, userID uuid.UUID, dto VerifyPaymentDTO) (*payment.Order, error) {
	o, err := s.orders.GetByGatewayOrderID(ctx, dto.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, payment.ErrNotFound
	}

	if !s.gateway.VerifySignature(dto.GatewayOrderID, dto.PaymentID, dto.Signature) {
		if err := s.orders.MarkFailed(ctx, o.ID); err != nil {
			return nil, err
		}
		return nil, payment.ErrSignatureMismatch
	}

	if err := s.settle(ctx, o, dto.PaymentID); err != nil && !errors.Is(err, payment.ErrAlreadyPaid) {
		return nil, err
	}
	return s.orders.GetByID(ctx, o.ID)
}

// webhookEvent mirrors the Razorpay webhook envelope.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook processes a gateway webhook delivery. Events other than
// payment.captured are acknowledged and ignored; redeliveries are idempotent.
func (s *BillingService) HandleWebhook(ctx context.Context, rawBody []byte, signature string) error {
	if !s.gateway.VerifyWebhook(rawBody, signature) {
		return payment.ErrSignatureMismatch
	}

	var event webhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return gerrors.Wrap(err, "failed to decode webhook event")
	}
	if event.Event != "payment.captured" {
		return nil
	}

	o, err := s.orders.GetByGatewayOrderID(ctx, event.Payload.Payment.Entity.OrderID)
	if err != nil {
		return err
	}
	err = s.settle(ctx, o, event.Payload.Payment.Entity.ID)
	if errors.Is(err, payment.ErrAlreadyPaid) {
		return nil
	}
	return err
}

func (s *BillingService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*payment.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *BillingService) settle(ctx context.Context, o *payment.Order, paymentID string) error {
	if err := s.orders.MarkPaid(ctx, o.ID, paymentID); err != nil {
		return err
	}
	if _, err := s.upgrader.UpgradePlan(ctx, o.UserID, user.Plan(o.Plan)); err != nil {
		return err
	}
	s.publisher.Publish(payment.PaidEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Plan:      o.Plan,
		PaymentID: paymentID,
	})
	return nil
}
