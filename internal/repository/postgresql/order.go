package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

const orderColumns = `order_id, customer_id, order_status,
            order_purchase_timestamp, order_approved_at,
            order_delivered_carrier_date, order_delivered_customer_date,
            order_estimated_delivery_date`

type OrderRepo struct {
	db db.DB
}

func NewOrderRepo(db db.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// orderWhere is shared by List and Count so the count always describes the
// same row set the page was cut from.
func orderWhere(filter repository.OrderFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(format string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(format, len(args)))
	}

	if filter.Status != "" {
		add("order_status = $%d", filter.Status)
	}

	ranges := []struct {
		column   string
		from, to *time.Time
	}{
		{"order_purchase_timestamp", filter.PurchaseFrom, filter.PurchaseTo},
		{"order_approved_at", filter.ApprovedFrom, filter.ApprovedTo},
		{"order_delivered_carrier_date", filter.DeliveredCarrierFrom, filter.DeliveredCarrierTo},
		{"order_delivered_customer_date", filter.DeliveredCustomerFrom, filter.DeliveredCustomerTo},
		{"order_estimated_delivery_date", filter.EstimatedFrom, filter.EstimatedTo},
	}
	for _, rng := range ranges {
		if rng.from != nil {
			add(rng.column+" >= $%d", *rng.from)
		}
		if rng.to != nil {
			add(rng.column+" <= $%d", *rng.to)
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *OrderRepo) Create(ctx context.Context, order *repository.Order) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO orders (
            order_id, customer_id, order_status,
            order_purchase_timestamp, order_approved_at,
            order_delivered_carrier_date, order_delivered_customer_date,
            order_estimated_delivery_date
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, order.OrderID, order.CustomerID, order.Status,
		order.PurchaseTimestamp, order.ApprovedAt,
		order.DeliveredCarrierDate, order.DeliveredCustomerDate,
		order.EstimatedDeliveryDate)
	return apperrors.FromPg(err)
}

func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter, limit, offset int64) ([]repository.Order, error) {
	where, args := orderWhere(filter)
	query := fmt.Sprintf(`
        SELECT %s FROM orders%s
        ORDER BY order_id ASC
        LIMIT $%d OFFSET $%d
    `, orderColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var orders []repository.Order
	if err := r.db.Select(ctx, &orders, query, args...); err != nil {
		return nil, apperrors.FromPg(err)
	}
	return orders, nil
}

func (r *OrderRepo) Count(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	where, args := orderWhere(filter)

	var total int64
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total)
	if err != nil {
		return 0, apperrors.FromPg(err)
	}
	return total, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.Order, error) {
	var order repository.Order
	err := r.db.Get(ctx, &order,
		fmt.Sprintf("SELECT %s FROM orders WHERE order_id = $1", orderColumns), id)
	if err != nil {
		return nil, apperrors.FromPg(err)
	}
	return &order, nil
}

func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM orders WHERE order_id = $1", id)
	if err != nil {
		return apperrors.FromPg(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int64) ([]repository.Order, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM orders
        WHERE customer_id = $1
        ORDER BY order_id ASC
        LIMIT $2 OFFSET $3
    `, orderColumns)

	var orders []repository.Order
	if err := r.db.Select(ctx, &orders, query, customerID, limit, offset); err != nil {
		return nil, apperrors.FromPg(err)
	}
	return orders, nil
}

func (r *OrderRepo) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var total int64
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE customer_id = $1", customerID).Scan(&total)
	if err != nil {
		return 0, apperrors.FromPg(err)
	}
	return total, nil
}
