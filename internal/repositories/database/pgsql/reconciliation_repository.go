package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fbangoura/bakery_ledger_app/internal/apperrors"
	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portsrepo "github.com/fbangoura/bakery_ledger_app/internal/core/ports/repositories"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

// newPgxReconciliationRepository creates a new repository for stock reconciliations.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const reconciliationColumns = `
	reconciliation_id, restaurant_id, status, notes, approved_by, approved_by_name, approved_at,
	created_at, created_by, created_by_name, last_updated_at, last_updated_by
`

func scanReconciliation(row pgx.Row) (*domain.StockReconciliation, error) {
	var recon domain.StockReconciliation
	err := row.Scan(
		&recon.ReconciliationID,
		&recon.RestaurantID,
		&recon.Status,
		&recon.Notes,
		&recon.ApprovedBy,
		&recon.ApprovedByName,
		&recon.ApprovedAt,
		&recon.CreatedAt,
		&recon.CreatedBy,
		&recon.CreatedByName,
		&recon.LastUpdatedAt,
		&recon.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan reconciliation: %w", err)
	}
	return &recon, nil
}

func (r *PgxReconciliationRepository) loadItems(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, reconciliationID string) ([]domain.ReconciliationItem, error) {
	query := `
		SELECT line_id, reconciliation_id, inventory_item_id, system_stock,
		       physical_count, variance, adjustment_applied
		FROM reconciliation_items
		WHERE reconciliation_id = $1
		ORDER BY line_id;`
	rows, err := q.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ReconciliationItem, 0)
	for rows.Next() {
		var item domain.ReconciliationItem
		err := rows.Scan(
			&item.LineID,
			&item.ReconciliationID,
			&item.InventoryItemID,
			&item.SystemStock,
			&item.PhysicalCount,
			&item.Variance,
			&item.AdjustmentApplied,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reconciliation item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliation items: %w", err)
	}
	return items, nil
}

func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.StockReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM stock_reconciliations WHERE reconciliation_id = $1;`
	recon, err := scanReconciliation(r.Pool.QueryRow(ctx, query, reconciliationID))
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, r.Pool, reconciliationID)
	if err != nil {
		return nil, err
	}
	recon.Items = items
	return recon, nil
}

func (r *PgxReconciliationRepository) ListReconciliationsByRestaurant(ctx context.Context, restaurantID string) ([]domain.StockReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM stock_reconciliations WHERE restaurant_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliations: %w", err)
	}
	defer rows.Close()

	recons := make([]domain.StockReconciliation, 0)
	for rows.Next() {
		recon, err := scanReconciliation(rows)
		if err != nil {
			return nil, err
		}
		recons = append(recons, *recon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reconciliations: %w", err)
	}
	return recons, nil
}

// SaveReconciliation inserts the header and all its lines in one transaction.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, recon domain.StockReconciliation) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		INSERT INTO stock_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err = tx.Exec(ctx, headerQuery,
		recon.ReconciliationID,
		recon.RestaurantID,
		recon.Status,
		recon.Notes,
		recon.ApprovedBy,
		recon.ApprovedByName,
		recon.ApprovedAt,
		recon.CreatedAt,
		recon.CreatedBy,
		recon.CreatedByName,
		recon.LastUpdatedAt,
		recon.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reconciliation %s: %w", recon.ReconciliationID, err)
	}

	itemQuery := `
		INSERT INTO reconciliation_items (
			line_id, reconciliation_id, inventory_item_id, system_stock,
			physical_count, variance, adjustment_applied
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	for _, item := range recon.Items {
		_, err := tx.Exec(ctx, itemQuery,
			item.LineID,
			item.ReconciliationID,
			item.InventoryItemID,
			item.SystemStock,
			item.PhysicalCount,
			item.Variance,
			item.AdjustmentApplied,
		)
		if err != nil {
			return fmt.Errorf("failed to insert reconciliation item %s: %w", item.LineID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// ApproveReconciliation applies the count: every line with a non-zero variance
// gets a corrective ADJUSTMENT movement and the item's stock is forced to the
// physical count, regardless of movements recorded since the count was taken.
func (r *PgxReconciliationRepository) ApproveReconciliation(ctx context.Context, reconciliationID, approverID, approverName string, now time.Time) (*domain.StockReconciliation, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	recon, err := r.lockPendingHeader(ctx, tx, reconciliationID)
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, tx, reconciliationID)
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		lockQuery := `SELECT item_id FROM inventory_items WHERE item_id = $1 FOR UPDATE;`
		var lockedID string
		if err := tx.QueryRow(ctx, lockQuery, item.InventoryItemID).Scan(&lockedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("%w: inventory item %s", apperrors.ErrNotFound, item.InventoryItemID)
			}
			return nil, fmt.Errorf("failed to lock item %s: %w", item.InventoryItemID, err)
		}

		if !item.Variance.IsZero() {
			movement := domain.StockMovement{
				MovementID:   uuid.NewString(),
				RestaurantID: recon.RestaurantID,
				ItemID:       item.InventoryItemID,
				Type:         domain.MovementAdjustment,
				Quantity:     item.Variance,
				Reason:       item.AdjustmentReason(recon.ReconciliationID),
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     approverID,
					CreatedByName: approverName,
					LastUpdatedAt: now,
					LastUpdatedBy: approverID,
				},
			}
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
				return nil, fmt.Errorf("failed to insert adjustment movement: %w", err)
			}
		}

		// The physical count wins even when stock moved after the count.
		forceQuery := `
			UPDATE inventory_items
			SET current_stock = $1, last_updated_at = $2, last_updated_by = $3
			WHERE item_id = $4;`
		if _, err := tx.Exec(ctx, forceQuery, item.PhysicalCount, now, approverID, item.InventoryItemID); err != nil {
			return nil, fmt.Errorf("failed to force stock for item %s: %w", item.InventoryItemID, err)
		}

		if _, err := tx.Exec(ctx, `UPDATE reconciliation_items SET adjustment_applied = TRUE WHERE line_id = $1;`, item.LineID); err != nil {
			return nil, fmt.Errorf("failed to mark line applied %s: %w", item.LineID, err)
		}
		items[i].AdjustmentApplied = true
	}

	recon.Status = domain.ReconciliationApproved
	recon.ApprovedBy = &approverID
	recon.ApprovedByName = approverName
	recon.ApprovedAt = &now
	recon.LastUpdatedAt = now
	recon.LastUpdatedBy = approverID
	recon.Items = items

	if err := r.stampHeader(ctx, tx, recon); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return recon, nil
}

// RejectReconciliation closes the count without touching stock.
func (r *PgxReconciliationRepository) RejectReconciliation(ctx context.Context, reconciliationID, approverID, approverName string, now time.Time) (*domain.StockReconciliation, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	recon, err := r.lockPendingHeader(ctx, tx, reconciliationID)
	if err != nil {
		return nil, err
	}

	recon.Status = domain.ReconciliationRejected
	recon.ApprovedBy = &approverID
	recon.ApprovedByName = approverName
	recon.ApprovedAt = &now
	recon.LastUpdatedAt = now
	recon.LastUpdatedBy = approverID

	if err := r.stampHeader(ctx, tx, recon); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, tx, reconciliationID)
	if err != nil {
		return nil, err
	}
	recon.Items = items

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return recon, nil
}

func (r *PgxReconciliationRepository) lockPendingHeader(ctx context.Context, tx pgx.Tx, reconciliationID string) (*domain.StockReconciliation, error) {
	lockQuery := `SELECT ` + reconciliationColumns + ` FROM stock_reconciliations WHERE reconciliation_id = $1 FOR UPDATE;`
	recon, err := scanReconciliation(tx.QueryRow(ctx, lockQuery, reconciliationID))
	if err != nil {
		return nil, err
	}
	if recon.Status != domain.ReconciliationPending {
		return nil, fmt.Errorf("%w: reconciliation is %s", apperrors.ErrAlreadyProcessed, recon.Status)
	}
	return recon, nil
}

func (r *PgxReconciliationRepository) stampHeader(ctx context.Context, tx pgx.Tx, recon *domain.StockReconciliation) error {
	query := `
		UPDATE stock_reconciliations
		SET status = $1, approved_by = $2, approved_by_name = $3, approved_at = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE reconciliation_id = $7;`
	_, err := tx.Exec(ctx, query,
		recon.Status, recon.ApprovedBy, recon.ApprovedByName, recon.ApprovedAt,
		recon.LastUpdatedAt, recon.LastUpdatedBy, recon.ReconciliationID)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation %s: %w", recon.ReconciliationID, err)
	}
	return nil
}
