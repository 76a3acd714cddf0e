package postgresql

import (
	"context"
	"fmt"
	"strings"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

const geolocationColumns = `id, geolocation_zip_code_prefix, geolocation_lat, geolocation_lng,
            geolocation_city, geolocation_state, created_at, updated_at`

type GeolocationRepo struct {
	db db.DB
}

func NewGeolocationRepo(db db.DB) *GeolocationRepo {
	return &GeolocationRepo{db: db}
}

func geolocationWhere(filter repository.GeolocationFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.ZipCodePrefix != "" {
		args = append(args, filter.ZipCodePrefix)
		conds = append(conds, fmt.Sprintf("geolocation_zip_code_prefix = $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		conds = append(conds, fmt.Sprintf("LOWER(geolocation_city) = LOWER($%d)", len(args)))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		conds = append(conds, fmt.Sprintf("geolocation_state = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Create inserts one sample and returns it with the store-assigned id and
// timestamps filled in.
func (r *GeolocationRepo) Create(ctx context.Context, geo *repository.Geolocation) error {
	err := r.db.ExecQueryRow(ctx, `
        INSERT INTO geolocations (
            geolocation_zip_code_prefix, geolocation_lat, geolocation_lng,
            geolocation_city, geolocation_state
        ) VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at
    `, geo.ZipCodePrefix, geo.Lat, geo.Lng, geo.City, geo.State).
		Scan(&geo.ID, &geo.CreatedAt, &geo.UpdatedAt)
	return apperrors.FromPg(err)
}

// CreateBatch inserts a set of samples atomically: either every row lands
// or none does.
func (r *GeolocationRepo) CreateBatch(ctx context.Context, geos []repository.Geolocation) error {
	if len(geos) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return apperrors.FromPg(err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for i := range geos {
		_, err := tx.Exec(ctx, `
            INSERT INTO geolocations (
                geolocation_zip_code_prefix, geolocation_lat, geolocation_lng,
                geolocation_city, geolocation_state
            ) VALUES ($1, $2, $3, $4, $5)
        `, geos[i].ZipCodePrefix, geos[i].Lat, geos[i].Lng, geos[i].City, geos[i].State)
		if err != nil {
			return apperrors.FromPg(err)
		}
	}

	return apperrors.FromPg(tx.Commit(ctx))
}

func (r *GeolocationRepo) List(ctx context.Context, filter repository.GeolocationFilter, limit, offset int64) ([]repository.Geolocation, error) {
	where, args := geolocationWhere(filter)
	query := fmt.Sprintf(`
        SELECT %s FROM geolocations%s
        ORDER BY id ASC
        LIMIT $%d OFFSET $%d
    `, geolocationColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var geos []repository.Geolocation
	if err := r.db.Select(ctx, &geos, query, args...); err != nil {
		return nil, apperrors.FromPg(err)
	}
	return geos, nil
}

func (r *GeolocationRepo) Count(ctx context.Context, filter repository.GeolocationFilter) (int64, error) {
	where, args := geolocationWhere(filter)

	var total int64
	err := r.db.ExecQueryRow(ctx, "SELECT COUNT(*) FROM geolocations"+where, args...).Scan(&total)
	if err != nil {
		return 0, apperrors.FromPg(err)
	}
	return total, nil
}

func (r *GeolocationRepo) GetByID(ctx context.Context, id int64) (*repository.Geolocation, error) {
	var geo repository.Geolocation
	err := r.db.Get(ctx, &geo,
		fmt.Sprintf("SELECT %s FROM geolocations WHERE id = $1", geolocationColumns), id)
	if err != nil {
		return nil, apperrors.FromPg(err)
	}
	return &geo, nil
}

func (r *GeolocationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM geolocations WHERE id = $1", id)
	if err != nil {
		return apperrors.FromPg(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
