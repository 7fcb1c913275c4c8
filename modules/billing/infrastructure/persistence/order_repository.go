package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/billing/domain/aggregates/payment"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/composables"
)

const (
	insertOrderQuery = `
		INSERT INTO payment_orders (id, user_id, gateway_order_id, plan, amount, currency, status, payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectOrderQuery = `
		SELECT id, user_id, gateway_order_id, plan, amount, currency, status, payment_id, created_at, updated_at
		FROM payment_orders`

	markOrderPaidQuery = `
		UPDATE payment_orders
		SET status = 'paid', payment_id = $2, updated_at = $3
		WHERE id = $1 AND status = 'created'`

	markOrderFailedQuery = `
		UPDATE payment_orders
		SET status = 'failed', updated_at = $2
		WHERE id = $1 AND status = 'created'`
)

type OrderRepository struct{}

func NewOrderRepository() payment.Repository {
	return &OrderRepository{}
}

func (r *OrderRepository) Insert(ctx context.Context, o *payment.Order) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insertOrderQuery,
		o.ID.String(), o.UserID.String(), o.GatewayOrderID, o.Plan, o.Amount, o.Currency,
		string(o.Status), o.PaymentID, o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return gerrors.Wrap(err, "failed to insert payment order")
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*payment.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanOrder(tx.QueryRow(ctx, selectOrderQuery+" WHERE id = $1", id.String()))
}

func (r *OrderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*payment.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	return scanOrder(tx.QueryRow(ctx, selectOrderQuery+" WHERE gateway_order_id = $1", gatewayOrderID))
}

func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, markOrderPaidQuery, id.String(), paymentID, time.Now())
	if err != nil {
		return gerrors.Wrap(err, "failed to mark payment order paid")
	}
	if tag.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing.Status == payment.StatusPaid {
			return payment.ErrAlreadyPaid
		}
		return payment.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, markOrderFailedQuery, id.String(), time.Now())
	return err
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*payment.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, selectOrderQuery+" WHERE user_id = $1 ORDER BY created_at DESC", userID.String())
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list payment orders")
	}
	defer rows.Close()

	var out []*payment.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*payment.Order, error) {
	var (
		o          payment.Order
		id, userID string
		status     string
	)
	if err := row.Scan(&id, &userID, &o.GatewayOrderID, &o.Plan, &o.Amount, &o.Currency, &status, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payment.ErrNotFound
		}
		return nil, gerrors.Wrap(err, "failed to scan payment order")
	}
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse payment order id")
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to parse payment order user id")
	}
	o.ID = oid
	o.UserID = uid
	o.Status = payment.Status(status)
	return &o, nil
}
