package postgresql

import (
	"context"
	"fmt"
	"strings"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

const sellerColumns = `seller_id, seller_zip_code_prefix, seller_city, seller_state`

type SellerRepo struct {
	db db.DB
}

func NewSellerRepo(db db.DB) *SellerRepo {
	return &SellerRepo{db: db}
}

func sellerWhere(filter repository.LocationFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.City != "" {
		args = append(args, filter.City)
		conds = append(conds, fmt.Sprintf("LOWER(seller_city) = LOWER($%d)", len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conds = append(conds, fmt.Sprintf("seller_state = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *SellerRepo) Create(ctx context.Context, seller *repository.Seller) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO sellers (
            seller_id, seller_zip_code_prefix, seller_city, seller_state
        ) VALUES ($1, $2, $3, $4)
    `, seller.SellerID, seller.ZipCodePrefix, seller.City, seller.State)
	return apperrors.FromPg(err)
}

func (r *SellerRepo) List(ctx context.Context, filter repository.LocationFilter, limit, offset int64) ([]repository.Seller, error) {
	where, args := sellerWhere(filter)
	query := fmt.Sprintf(`
        SELECT %s FROM sellers%s
        ORDER BY seller_id ASC
        LIMIT $%d OFFSET $%d
    `, sellerColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var sellers []repository.Seller
	if err := r.db.Select(ctx, &sellers, query, args...); err != nil {
		return nil, apperrors.FromPg(err)
	}
	return sellers, nil
}

func (r *SellerRepo) Count(ctx context.Context, filter repository.LocationFilter) (int64, error) {
	where, args := sellerWhere(filter)

	var total int64
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM sellers"+where, args...).Scan(&total)
	if err != nil {
		return 0, apperrors.FromPg(err)
	}
	return total, nil
}

func (r *SellerRepo) GetByID(ctx context.Context, id string) (*repository.Seller, error) {
	var seller repository.Seller
	err := r.db.Get(ctx, &seller,
		fmt.Sprintf("SELECT %s FROM sellers WHERE seller_id = $1", sellerColumns), id)
	if err != nil {
		return nil, apperrors.FromPg(err)
	}
	return &seller, nil
}

func (r *SellerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM sellers WHERE seller_id = $1", id)
	if err != nil {
		return apperrors.FromPg(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
