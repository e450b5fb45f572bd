package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentkart/rentkart/internal/domain/cart"
	"github.com/rentkart/rentkart/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, user_id, items, subtotal, payment_discount,
		coupon_discount, discount, final_total, coupon_code, payment_option,
		payment_state, customer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	getOrderSQL = `SELECT id, user_id, items, subtotal, payment_discount, coupon_discount,
		discount, final_total, coupon_code, payment_option, payment_state,
		gateway_order_id, payment_id, customer, created_at
		FROM orders WHERE id = $1`

	listOrdersByUserSQL = `SELECT id, user_id, items, subtotal, payment_discount, coupon_discount,
		discount, final_total, coupon_code, payment_option, payment_state,
		gateway_order_id, payment_id, customer, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	setGatewayOrderSQL = `UPDATE orders SET gateway_order_id = $2 WHERE id = $1`

	// Settlement is a single conditional update: only a pending order
	// transitions, so replayed callbacks change nothing.
	settlePaymentSQL = `UPDATE orders SET payment_state = 'paid', payment_id = $2
		WHERE id = $1 AND payment_state = 'pending'`

	getPaymentStateSQL = `SELECT payment_state FROM orders WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. Items and customer metadata are serialized to
// JSON for storage in JSONB columns.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshaling order customer: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, itemsJSON, o.Subtotal, o.PaymentDiscount,
		o.CouponDiscount, o.Discount, o.FinalTotal, o.CouponCode,
		string(o.PaymentOption), string(order.PaymentPending), customerJSON,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// GetByID returns a single order, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for %q: %w", userID, err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders for %q: %w", userID, err)
	}
	return orders, nil
}

// SetGatewayOrder records the payment gateway's order reference.
func (r *OrderRepository) SetGatewayOrder(ctx context.Context, orderID, gatewayOrderID string) error {
	_, err := r.pool.Exec(ctx, setGatewayOrderSQL, orderID, gatewayOrderID)
	if err != nil {
		return fmt.Errorf("recording gateway order for %q: %w", orderID, err)
	}
	return nil
}

// SettlePayment transitions a pending order to paid and reports the state
// the order ends up in. Repeated calls for an already-settled order are
// no-ops that return the settled state.
func (r *OrderRepository) SettlePayment(ctx context.Context, orderID, paymentID string) (order.PaymentState, error) {
	tag, err := r.pool.Exec(ctx, settlePaymentSQL, orderID, paymentID)
	if err != nil {
		return "", fmt.Errorf("settling payment for %q: %w", orderID, err)
	}
	if tag.RowsAffected() > 0 {
		return order.PaymentPaid, nil
	}

	var state string
	if err := r.pool.QueryRow(ctx, getPaymentStateSQL, orderID).Scan(&state); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", order.ErrNotFound
		}
		return "", fmt.Errorf("reading payment state for %q: %w", orderID, err)
	}
	return order.PaymentState(state), nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o             order.Order
		itemsJSON     []byte
		customerJSON  []byte
		paymentOption string
		paymentState  string
	)
	err := row.Scan(
		&o.ID, &o.UserID, &itemsJSON, &o.Subtotal, &o.PaymentDiscount,
		&o.CouponDiscount, &o.Discount, &o.FinalTotal, &o.CouponCode,
		&paymentOption, &paymentState, &o.GatewayOrderID, &o.PaymentID,
		&customerJSON, &o.CreatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("decoding items for order %q: %w", o.ID, err)
	}
	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return order.Order{}, fmt.Errorf("decoding customer for order %q: %w", o.ID, err)
	}
	o.PaymentOption = cart.PaymentOption(paymentOption)
	o.PaymentState = order.PaymentState(paymentState)
	return o, nil
}
