package services_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/domain/aggregates/payment"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/services"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/core/domain/aggregates/user"
)

func TestBillingService_CreateOrder(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	assert.Equal(t, payment.StatusCreated, o.Status)
	assert.Equal(t, "order_1", o.GatewayOrderID)
	assert.Equal(t, "pro", o.Plan)
	assert.Equal(t, int64(49900), o.Amount)
	assert.Equal(t, "INR", o.Currency)
	assert.Equal(t, o.ID.String(), f.gateway.lastReceipt)

	stored, err := f.orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.GatewayOrderID, stored.GatewayOrderID)
}

func TestBillingService_CreateOrder_UnknownPlan(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	_, err := f.billingSvc.CreateOrder(f.ctx, userID, "enterprise")
	require.ErrorIs(t, err, payment.ErrUnknownPlan)
	assert.Zero(t, f.gateway.orders)
}

func TestBillingService_VerifyPayment(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	paid, err := f.billingSvc.VerifyPayment(f.ctx, userID, services.VerifyPaymentDTO{
		GatewayOrderID: o.GatewayOrderID,
		PaymentID:      "pay_1",
		Signature:      signPayment(o.GatewayOrderID, "pay_1"),
	})
	require.NoError(t, err)

	assert.Equal(t, payment.StatusPaid, paid.Status)
	assert.Equal(t, "pay_1", paid.PaymentID)

	u, err := f.authSvc.GetUser(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user.PlanPro, u.Plan())
}

func TestBillingService_VerifyPayment_Replayed(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	dto := services.VerifyPaymentDTO{
		GatewayOrderID: o.GatewayOrderID,
		PaymentID:      "pay_1",
		Signature:      signPayment(o.GatewayOrderID, "pay_1"),
	}
	_, err = f.billingSvc.VerifyPayment(f.ctx, userID, dto)
	require.NoError(t, err)

	paid, err := f.billingSvc.VerifyPayment(f.ctx, userID, dto)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, paid.Status)
}

func TestBillingService_VerifyPayment_BadSignature(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	_, err = f.billingSvc.VerifyPayment(f.ctx, userID, services.VerifyPaymentDTO{
		GatewayOrderID: o.GatewayOrderID,
		PaymentID:      "pay_1",
		Signature:      "deadbeef",
	})
	require.ErrorIs(t, err, payment.ErrSignatureMismatch)

	stored, err := f.orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusFailed, stored.Status)

	u, err := f.authSvc.GetUser(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user.PlanFree, u.Plan())
}

func TestBillingService_VerifyPayment_WrongUser(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)
	otherID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	_, err = f.billingSvc.VerifyPayment(f.ctx, otherID, services.VerifyPaymentDTO{
		GatewayOrderID: o.GatewayOrderID,
		PaymentID:      "pay_1",
		Signature:      signPayment(o.GatewayOrderID, "pay_1"),
	})
	require.ErrorIs(t, err, payment.ErrNotFound)
}

func TestBillingService_HandleWebhook(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	body := []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_7","order_id":"%s"}}}}`,
		o.GatewayOrderID,
	))
	require.NoError(t, f.billingSvc.HandleWebhook(f.ctx, body, signWebhook(body)))

	stored, err := f.orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, stored.Status)
	assert.Equal(t, "pay_7", stored.PaymentID)

	u, err := f.authSvc.GetUser(f.ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, user.PlanPro, u.Plan())

	// Redelivery of the same event is acknowledged without error.
	require.NoError(t, f.billingSvc.HandleWebhook(f.ctx, body, signWebhook(body)))
}

func TestBillingService_HandleWebhook_BadSignature(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	body := []byte(`{"event":"payment.captured"}`)
	err := f.billingSvc.HandleWebhook(f.ctx, body, "bogus")
	require.ErrorIs(t, err, payment.ErrSignatureMismatch)
}

func TestBillingService_HandleWebhook_IgnoresOtherEvents(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)

	o, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)

	body := []byte(fmt.Sprintf(
		`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_7","order_id":"%s"}}}}`,
		o.GatewayOrderID,
	))
	require.NoError(t, f.billingSvc.HandleWebhook(f.ctx, body, signWebhook(body)))

	stored, err := f.orders.GetByID(f.ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusCreated, stored.Status)
}

func TestBillingService_ListOrders(t *testing.T) {
	t.Parallel()
	f := setupTest(t)
	userID := f.createUser(t)
	otherID := f.createUser(t)

	_, err := f.billingSvc.CreateOrder(f.ctx, userID, "pro")
	require.NoError(t, err)
	_, err = f.billingSvc.CreateOrder(f.ctx, otherID, "pro")
	require.NoError(t, err)

	orders, err := f.billingSvc.ListOrders(f.ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, userID, orders[0].UserID)

	orders, err = f.billingSvc.ListOrders(f.ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
