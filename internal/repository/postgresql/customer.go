package postgresql

import (
	"context"
	"fmt"
	"strings"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

const customerColumns = `customer_id, customer_unique_id, customer_zip_code_prefix, customer_city, customer_state`

type CustomerRepo struct {
	db db.DB
}

func NewCustomerRepo(db db.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// customerWhere builds the filter predicate used by both List and Count.
// Sharing one builder is what keeps total_records consistent with the page
// actually returned.
func customerWhere(filter repository.LocationFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.City != "" {
		args = append(args, filter.City)
		conds = append(conds, fmt.Sprintf("LOWER(customer_city) = LOWER($%d)", len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conds = append(conds, fmt.Sprintf("customer_state = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *CustomerRepo) Create(ctx context.Context, customer *repository.Customer) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO customers (
            customer_id, customer_unique_id, customer_zip_code_prefix, customer_city, customer_state
        ) VALUES ($1, $2, $3, $4, $5)
    `, customer.CustomerID, customer.CustomerUniqueID, customer.ZipCodePrefix, customer.City, customer.State)
	return apperrors.FromPg(err)
}

func (r *CustomerRepo) List(ctx context.Context, filter repository.LocationFilter, limit, offset int64) ([]repository.Customer, error) {
	where, args := customerWhere(filter)
	query := fmt.Sprintf(`
        SELECT %s FROM customers%s
        ORDER BY customer_id ASC
        LIMIT $%d OFFSET $%d
    `, customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var customers []repository.Customer
	if err := r.db.Select(ctx, &customers, query, args...); err != nil {
		return nil, apperrors.FromPg(err)
	}
	return customers, nil
}

func (r *CustomerRepo) Count(ctx context.Context, filter repository.LocationFilter) (int64, error) {
	where, args := customerWhere(filter)

	var total int64
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM customers"+where, args...).Scan(&total)
	if err != nil {
		return 0, apperrors.FromPg(err)
	}
	return total, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*repository.Customer, error) {
	var customer repository.Customer
	err := r.db.Get(ctx, &customer,
		fmt.Sprintf("SELECT %s FROM customers WHERE customer_id = $1", customerColumns), id)
	if err != nil {
		return nil, apperrors.FromPg(err)
	}
	return &customer, nil
}

func (r *CustomerRepo) Update(ctx context.Context, id string, patch repository.CustomerPatch) (*repository.Customer, error) {
	var customer repository.Customer
	err := r.db.Get(ctx, &customer, fmt.Sprintf(`
        UPDATE customers
        SET
            customer_unique_id = COALESCE($2, customer_unique_id),
            customer_zip_code_prefix = COALESCE($3, customer_zip_code_prefix),
            customer_city = COALESCE($4, customer_city),
            customer_state = COALESCE($5, customer_state)
        WHERE customer_id = $1
        RETURNING %s
    `, customerColumns), id, patch.CustomerUniqueID, patch.ZipCodePrefix, patch.City, patch.State)
	if err != nil {
		return nil, apperrors.FromPg(err)
	}
	return &customer, nil
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM customers WHERE customer_id = $1", id)
	if err != nil {
		return apperrors.FromPg(err)
	}
	// Dependent orders go with the row via ON DELETE CASCADE.
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
