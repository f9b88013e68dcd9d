package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

type PgxRestaurantRepository struct {
	BaseRepository
}

// newPgxRestaurantRepository creates a new repository for restaurants.
func newPgxRestaurantRepository(pool *pgxpool.Pool) portsrepo.RestaurantRepositoryFacade {
	return &PgxRestaurantRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RestaurantRepositoryFacade = (*PgxRestaurantRepository)(nil)

const restaurantColumns = `
	restaurant_id, name, address, opening_cash_balance, opening_orange_money_balance,
	opening_card_balance, stock_deduction_mode, is_active,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	err := row.Scan(
		&restaurant.RestaurantID,
		&restaurant.Name,
		&restaurant.Address,
		&restaurant.OpeningCashBalance,
		&restaurant.OpeningOrangeMoneyBalance,
		&restaurant.OpeningCardBalance,
		&restaurant.StockDeductionMode,
		&restaurant.IsActive,
		&restaurant.CreatedAt,
		&restaurant.CreatedBy,
		&restaurant.CreatedByName,
		&restaurant.LastUpdatedAt,
		&restaurant.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan restaurant: %w", err)
	}
	return &restaurant, nil
}

func (r *PgxRestaurantRepository) SaveRestaurant(ctx context.Context, restaurant domain.Restaurant) error {
	query := `
		INSERT INTO restaurants (` + restaurantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.Pool.Exec(ctx, query,
		restaurant.RestaurantID,
		restaurant.Name,
		restaurant.Address,
		restaurant.OpeningCashBalance,
		restaurant.OpeningOrangeMoneyBalance,
		restaurant.OpeningCardBalance,
		restaurant.StockDeductionMode,
		restaurant.IsActive,
		restaurant.CreatedAt,
		restaurant.CreatedBy,
		restaurant.CreatedByName,
		restaurant.LastUpdatedAt,
		restaurant.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert restaurant %s: %w", restaurant.RestaurantID, err)
	}
	return nil
}

func (r *PgxRestaurantRepository) FindRestaurantByID(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE restaurant_id = $1;`
	return scanRestaurant(r.Pool.QueryRow(ctx, query, restaurantID))
}

func (r *PgxRestaurantRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer rows.Close()

	restaurants := make([]domain.Restaurant, 0)
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restaurants: %w", err)
	}
	return restaurants, nil
}
