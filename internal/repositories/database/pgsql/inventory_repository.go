package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for the stock ledger.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

const inventoryItemColumns = `
	item_id, restaurant_id, name, category, unit, current_stock, min_stock,
	reorder_point, unit_cost_gnf, is_active,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

const stockMovementColumns = `
	movement_id, restaurant_id, item_id, movement_type, quantity, unit_cost,
	reason, production_log_id,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanInventoryItem(row pgx.Row) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := row.Scan(
		&item.ItemID,
		&item.RestaurantID,
		&item.Name,
		&item.Category,
		&item.Unit,
		&item.CurrentStock,
		&item.MinStock,
		&item.ReorderPoint,
		&item.UnitCostGNF,
		&item.IsActive,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.CreatedByName,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan inventory item: %w", err)
	}
	return &item, nil
}

func scanStockMovement(row pgx.Row) (*domain.StockMovement, error) {
	var m domain.StockMovement
	err := row.Scan(
		&m.MovementID,
		&m.RestaurantID,
		&m.ItemID,
		&m.Type,
		&m.Quantity,
		&m.UnitCost,
		&m.Reason,
		&m.ProductionLogID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.CreatedByName,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan stock movement: %w", err)
	}
	return &m, nil
}

func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE item_id = $1;`
	return scanInventoryItem(r.Pool.QueryRow(ctx, query, itemID))
}

func (r *PgxInventoryRepository) FindItemByNameAndCategory(ctx context.Context, restaurantID, name, category string) (*domain.InventoryItem, error) {
	query := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE restaurant_id = $1 AND lower(name) = lower($2) AND lower(category) = lower($3) AND is_active
		LIMIT 1;`
	return scanInventoryItem(r.Pool.QueryRow(ctx, query, restaurantID, name, category))
}

func (r *PgxInventoryRepository) ListItemsByRestaurant(ctx context.Context, restaurantID string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE restaurant_id = $1 ORDER BY name ASC;`
	rows, err := r.Pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory items: %w", err)
	}
	return items, nil
}

func (r *PgxInventoryRepository) ListMovementsByItem(ctx context.Context, itemID string) ([]domain.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE item_id = $1 ORDER BY created_at DESC;`
	return r.queryMovements(ctx, query, itemID)
}

func (r *PgxInventoryRepository) ListMovementsByProductionLog(ctx context.Context, productionLogID string) ([]domain.StockMovement, error) {
	query := `SELECT ` + stockMovementColumns + ` FROM stock_movements WHERE production_log_id = $1 ORDER BY created_at ASC;`
	return r.queryMovements(ctx, query, productionLogID)
}

func (r *PgxInventoryRepository) queryMovements(ctx context.Context, query string, args ...any) ([]domain.StockMovement, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	movements := make([]domain.StockMovement, 0)
	for rows.Next() {
		m, err := scanStockMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock movements: %w", err)
	}
	return movements, nil
}

func (r *PgxInventoryRepository) SaveItem(ctx context.Context, item domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (` + inventoryItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.RestaurantID,
		item.Name,
		item.Category,
		item.Unit,
		item.CurrentStock,
		item.MinStock,
		item.ReorderPoint,
		item.UnitCostGNF,
		item.IsActive,
		item.CreatedAt,
		item.CreatedBy,
		item.CreatedByName,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item %q already exists in category %q", apperrors.ErrDuplicate, item.Name, item.Category)
		}
		return fmt.Errorf("failed to insert inventory item %s: %w", item.ItemID, err)
	}
	return nil
}

// insertMovementTx appends one movement row and shifts the locked item's stock
// by the signed quantity. Callers hold the item lock.
func insertMovementTx(ctx context.Context, tx pgx.Tx, movement domain.StockMovement) error {
	insertQuery := `
		INSERT INTO stock_movements (` + stockMovementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := tx.Exec(ctx, insertQuery,
		movement.MovementID,
		movement.RestaurantID,
		movement.ItemID,
		movement.Type,
		movement.Quantity,
		movement.UnitCost,
		movement.Reason,
		movement.ProductionLogID,
		movement.CreatedAt,
		movement.CreatedBy,
		movement.CreatedByName,
		movement.LastUpdatedAt,
		movement.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock movement %s: %w", movement.MovementID, err)
	}

	updateQuery := `
		UPDATE inventory_items
		SET current_stock = current_stock + $1, last_updated_at = $2, last_updated_by = $3
		WHERE item_id = $4;`
	_, err = tx.Exec(ctx, updateQuery, movement.Quantity, movement.LastUpdatedAt, movement.LastUpdatedBy, movement.ItemID)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for item %s: %w", movement.ItemID, err)
	}
	return nil
}

func (r *PgxInventoryRepository) ApplyMovement(ctx context.Context, movement domain.StockMovement) (*domain.InventoryItem, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE item_id = $1 FOR UPDATE;`
	item, err := scanInventoryItem(tx.QueryRow(ctx, lockQuery, movement.ItemID))
	if err != nil {
		return nil, err
	}

	if err := insertMovementTx(ctx, tx, movement); err != nil {
		return nil, err
	}

	item.CurrentStock = item.CurrentStock.Add(movement.Quantity)
	item.LastUpdatedAt = movement.LastUpdatedAt
	item.LastUpdatedBy = movement.LastUpdatedBy

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return item, nil
}

// ApplyMovements writes a batch of movements all-or-nothing. Items are locked
// in itemID order so two concurrent batches cannot deadlock on each other.
func (r *PgxInventoryRepository) ApplyMovements(ctx context.Context, movements []domain.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	itemIDs := make([]string, 0, len(movements))
	for _, m := range movements {
		itemIDs = append(itemIDs, m.ItemID)
	}
	lockQuery := `SELECT item_id FROM inventory_items WHERE item_id = ANY($1) ORDER BY item_id FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to lock inventory items: %w", err)
	}
	locked := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked item: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to lock inventory items: %w", err)
	}
	if locked == 0 {
		return apperrors.ErrNotFound
	}

	for _, m := range movements {
		if err := insertMovementTx(ctx, tx, m); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ReverseProductionDeductions restores the stock consumed by a production log
// and deletes its movement rows. This is the only path that deletes from the
// stock ledger.
func (r *PgxInventoryRepository) ReverseProductionDeductions(ctx context.Context, restaurantID, productionLogID string) (int, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	selectQuery := `
		SELECT m.movement_id, m.item_id, m.quantity
		FROM stock_movements m
		JOIN inventory_items i ON i.item_id = m.item_id
		WHERE m.restaurant_id = $1 AND m.production_log_id = $2 AND m.quantity < 0
		ORDER BY m.item_id
		FOR UPDATE OF i;`
	rows, err := tx.Query(ctx, selectQuery, restaurantID, productionLogID)
	if err != nil {
		return 0, fmt.Errorf("failed to query production deductions: %w", err)
	}

	type deduction struct {
		movementID string
		itemID     string
		quantity   decimal.Decimal
	}
	var deductions []deduction
	for rows.Next() {
		var d deduction
		if err := rows.Scan(&d.movementID, &d.itemID, &d.quantity); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan production deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating production deductions: %w", err)
	}

	for _, d := range deductions {
		restoreQuery := `UPDATE inventory_items SET current_stock = current_stock + $1 WHERE item_id = $2;`
		if _, err := tx.Exec(ctx, restoreQuery, d.quantity.Neg(), d.itemID); err != nil {
			return 0, fmt.Errorf("failed to restore stock for item %s: %w", d.itemID, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM stock_movements WHERE movement_id = $1;`, d.movementID); err != nil {
			return 0, fmt.Errorf("failed to delete movement %s: %w", d.movementID, err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(deductions), nil
}

// SaveTransfer runs the whole cross-restaurant transfer in one transaction.
// The target item is resolved by name/category inside the transaction; when no
// match exists the provided template row is inserted.
func (r *PgxInventoryRepository) SaveTransfer(ctx context.Context, transfer domain.InventoryTransfer, outMovement, inMovement domain.StockMovement, targetItem domain.InventoryItem) (*domain.InventoryTransfer, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE item_id = $1 FOR UPDATE;`
	source, err := scanInventoryItem(tx.QueryRow(ctx, lockQuery, transfer.SourceItemID))
	if err != nil {
		return nil, err
	}
	if source.CurrentStock.LessThan(transfer.Quantity) {
		return nil, fmt.Errorf("%w: %s has %s, transfer needs %s",
			apperrors.ErrInsufficientStock, source.Name, source.CurrentStock.String(), transfer.Quantity.String())
	}

	matchQuery := `
		SELECT ` + inventoryItemColumns + `
		FROM inventory_items
		WHERE restaurant_id = $1 AND lower(name) = lower($2) AND lower(category) = lower($3) AND is_active
		LIMIT 1
		FOR UPDATE;`
	target, err := scanInventoryItem(tx.QueryRow(ctx, matchQuery, transfer.TargetRestaurantID, source.Name, source.Category))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		insertItemQuery := `
			INSERT INTO inventory_items (` + inventoryItemColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`
		_, err = tx.Exec(ctx, insertItemQuery,
			targetItem.ItemID,
			targetItem.RestaurantID,
			targetItem.Name,
			targetItem.Category,
			targetItem.Unit,
			targetItem.CurrentStock,
			targetItem.MinStock,
			targetItem.ReorderPoint,
			targetItem.UnitCostGNF,
			targetItem.IsActive,
			targetItem.CreatedAt,
			targetItem.CreatedBy,
			targetItem.CreatedByName,
			targetItem.LastUpdatedAt,
			targetItem.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert target item %s: %w", targetItem.ItemID, err)
		}
		target = &targetItem
	}

	outMovement.ItemID = source.ItemID
	inMovement.ItemID = target.ItemID
	transfer.TargetItemID = target.ItemID

	if err := insertMovementTx(ctx, tx, outMovement); err != nil {
		return nil, err
	}
	if err := insertMovementTx(ctx, tx, inMovement); err != nil {
		return nil, err
	}

	transferQuery := `
		INSERT INTO inventory_transfers (
			transfer_id, source_restaurant_id, target_restaurant_id, source_item_id,
			target_item_id, quantity, reason,
			created_at, created_by, created_by_name, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err = tx.Exec(ctx, transferQuery,
		transfer.TransferID,
		transfer.SourceRestaurantID,
		transfer.TargetRestaurantID,
		transfer.SourceItemID,
		transfer.TargetItemID,
		transfer.Quantity,
		transfer.Reason,
		transfer.CreatedAt,
		transfer.CreatedBy,
		transfer.CreatedByName,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transfer %s: %w", transfer.TransferID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &transfer, nil
}
