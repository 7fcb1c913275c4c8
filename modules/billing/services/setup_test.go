package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/infrastructure/gateway"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/infrastructure/persistence"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
	corepersistence "github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/infrastructure/persistence"
	coreservices "github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/eventbus"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/logging"
)

const (
	testKeySecret     = "test-key-secret"
	testWebhookSecret = "test-webhook-secret"
)

// fakeGateway mints deterministic gateway order ids and verifies signatures
// against the test secrets, so tests can forge valid checkout callbacks.
type fakeGateway struct {
	orders      int
	createErr   error
	lastReceipt string
}

func (g *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*gateway.GatewayOrder, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.orders++
	g.lastReceipt = receipt
	return &gateway.GatewayOrder{
		ID:       fmt.Sprintf("order_%d", g.orders),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return gateway.VerifyPaymentSignature(testKeySecret, gatewayOrderID, paymentID, signature)
}

func (g *fakeGateway) VerifyWebhook(rawBody []byte, signature string) bool {
	return gateway.VerifyWebhookSignature(testWebhookSecret, rawBody, signature)
}

func signPayment(gatewayOrderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testKeySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func signWebhook(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

type fixtures struct {
	ctx     context.Context
	orders  *persistence.InmemOrderRepository
	gateway *fakeGateway
	users   *corepersistence.InmemUserRepository
	authSvc *coreservices.AuthService

	billingSvc *services.BillingService
}

func setupTest(t *testing.T) *fixtures {
	t.Helper()

	orders := persistence.NewInmemOrderRepository()
	gw := &fakeGateway{}
	users := corepersistence.NewInmemUserRepository()
	authSvc := coreservices.NewAuthService(users, corepersistence.NewInmemSessionRepository(), time.Hour)
	bus := eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel))

	return &fixtures{
		ctx:        context.Background(),
		orders:     orders,
		gateway:    gw,
		users:      users,
		authSvc:    authSvc,
		billingSvc: services.NewBillingService(orders, gw, authSvc, bus),
	}
}

func (f *fixtures) createUser(t *testing.T) uuid.UUID {
	t.Helper()

	u, err := user.New(fmt.Sprintf("%s@example.com", uuid.NewString()), "Test User", "long-enough-password")
	require.NoError(t, err)
	created, err := f.users.Create(f.ctx, u)
	require.NoError(t, err)
	return created.ID()
}
