package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
)

type ReceiptRepository interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Receipt, error)
	SetExtractionResult(ctx context.Context, receipt *models.Receipt) error
	SetStatus(ctx context.Context, id uuid.UUID, status string) error
	ListStuckProcessing(ctx context.Context, olderThan time.Time) ([]*models.Receipt, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type receiptRepository struct {
	db DBTX
}

func NewReceiptRepository(db DBTX) ReceiptRepository {
	return &receiptRepository{db: db}
}

const receiptColumns = `id, driver_id, file_name, file_path, upload_date, status, vendor, receipt_date, amount, category, created_at, updated_at`

func scanReceipt(row pgx.Row) (*models.Receipt, error) {
	rc := &models.Receipt{}
	err := row.Scan(&rc.ID, &rc.DriverID, &rc.FileName, &rc.FilePath, &rc.UploadDate,
		&rc.Status, &rc.Vendor, &rc.ReceiptDate, &rc.Amount, &rc.Category,
		&rc.CreatedAt, &rc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundf("receipt")
		}
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}
	return rc, nil
}

func (r *receiptRepository) Create(ctx context.Context, receipt *models.Receipt) error {
	query := `INSERT INTO receipts (id, driver_id, file_name, file_path, upload_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	_, err := r.db.Exec(ctx, query, receipt.ID, receipt.DriverID, receipt.FileName,
		receipt.FilePath, receipt.UploadDate, receipt.Status)
	if err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	receipt, err := scanReceipt(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}

func (r *receiptRepository) listItems(ctx context.Context, receiptID uuid.UUID) ([]*models.ReceiptItem, error) {
	query := `SELECT id, receipt_id, description, quantity, price FROM receipt_items WHERE receipt_id = $1`
	rows, err := r.db.Query(ctx, query, receiptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipt items: %w", err)
	}
	defer rows.Close()

	items := make([]*models.ReceiptItem, 0)
	for rows.Next() {
		item := &models.ReceiptItem{}
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Description, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan receipt item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *receiptRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE driver_id = $1 ORDER BY upload_date DESC`
	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list driver receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]*models.Receipt, 0)
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}

// SetExtractionResult writes the extracted fields, replaces the line items and
// marks the receipt Completed in one pass.
func (r *receiptRepository) SetExtractionResult(ctx context.Context, receipt *models.Receipt) error {
	query := `UPDATE receipts
		SET status = $1, vendor = $2, receipt_date = $3, amount = $4, category = $5, updated_at = NOW()
		WHERE id = $6`
	tag, err := r.db.Exec(ctx, query, models.ReceiptStatusCompleted, receipt.Vendor,
		receipt.ReceiptDate, receipt.Amount, receipt.Category, receipt.ID)
	if err != nil {
		return fmt.Errorf("failed to store extraction result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("receipt")
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id = $1`, receipt.ID); err != nil {
		return fmt.Errorf("failed to clear receipt items: %w", err)
	}
	for _, item := range receipt.Items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO receipt_items (id, receipt_id, description, quantity, price) VALUES ($1, $2, $3, $4, $5)`,
			item.ID, receipt.ID, item.Description, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("failed to insert receipt item: %w", err)
		}
	}
	return nil
}

func (r *receiptRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE receipts SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update receipt status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("receipt")
	}
	return nil
}

// ListStuckProcessing returns receipts still Processing past the deadline so
// the background sweep can fail them.
func (r *receiptRepository) ListStuckProcessing(ctx context.Context, olderThan time.Time) ([]*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE status = $1 AND upload_date < $2`
	rows, err := r.db.Query(ctx, query, models.ReceiptStatusProcessing, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to list stuck receipts: %w", err)
	}
	defer rows.Close()

	receipts := make([]*models.Receipt, 0)
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, rc)
	}
	return receipts, rows.Err()
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM receipt_items WHERE receipt_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete receipt items: %w", err)
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundf("receipt")
	}
	return nil
}
