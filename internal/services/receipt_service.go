package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/common"
	"github.com/geraud82/NeoPay-sub000/internal/models"
	"github.com/geraud82/NeoPay-sub000/internal/repositories"
)

const presignedURLExpiry = 15 * time.Minute

// ExtractionQueue schedules the asynchronous extraction of an uploaded
// receipt. The background scheduler implements it.
type ExtractionQueue interface {
	EnqueueReceiptExtraction(receiptID uuid.UUID)
}

type ReceiptService interface {
	Upload(ctx context.Context, companyID, driverID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (*models.Receipt, error)
	GetByID(ctx context.Context, companyID, receiptID uuid.UUID) (*models.Receipt, error)
	ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Receipt, error)
	FileURL(ctx context.Context, companyID, receiptID uuid.UUID) (string, error)
	Delete(ctx context.Context, companyID, receiptID uuid.UUID) error
	ProcessExtraction(ctx context.Context, receiptID uuid.UUID)
	FailStuck(ctx context.Context, olderThan time.Time) (int, error)
	SetQueue(queue ExtractionQueue)
}

type receiptService struct {
	receiptRepo repositories.ReceiptRepository
	driverRepo  repositories.DriverRepository
	storage     StorageService
	extractor   ReceiptExtractor
	bucket      string
	queue       ExtractionQueue
}

func NewReceiptService(receiptRepo repositories.ReceiptRepository, driverRepo repositories.DriverRepository,
	storage StorageService, extractor ReceiptExtractor, bucket string) ReceiptService {
	return &receiptService{
		receiptRepo: receiptRepo,
		driverRepo:  driverRepo,
		storage:     storage,
		extractor:   extractor,
		bucket:      bucket,
	}
}

// SetQueue wires the background scheduler in after construction; the
// scheduler itself depends on this service for the extraction task.
func (s *receiptService) SetQueue(queue ExtractionQueue) {
	s.queue = queue
}

func (s *receiptService) driverInCompany(ctx context.Context, companyID, driverID uuid.UUID) error {
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.CompanyID != companyID {
		return common.NotFoundf("driver")
	}
	return nil
}

func (s *receiptService) Upload(ctx context.Context, companyID, driverID uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (*models.Receipt, error) {
	if err := common.ValidateRequiredString(fileName, "file name"); err != nil {
		return nil, common.Validationf("%s", err.Error())
	}
	if err := s.driverInCompany(ctx, companyID, driverID); err != nil {
		return nil, err
	}

	receiptID := uuid.New()
	objectKey := fmt.Sprintf("receipts/%s/%s-%s", driverID, receiptID, fileName)

	if err := s.storage.UploadReceipt(ctx, s.bucket, objectKey, contentType, reader, size); err != nil {
		return nil, fmt.Errorf("failed to store receipt file: %w", err)
	}

	now := time.Now()
	receipt := &models.Receipt{
		ID:         receiptID,
		DriverID:   driverID,
		FileName:   fileName,
		FilePath:   objectKey,
		UploadDate: now,
		Status:     models.ReceiptStatusProcessing,
		Items:      []*models.ReceiptItem{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}

	if s.queue != nil {
		s.queue.EnqueueReceiptExtraction(receiptID)
	}
	return receipt, nil
}

func (s *receiptService) GetByID(ctx context.Context, companyID, receiptID uuid.UUID) (*models.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if err := s.driverInCompany(ctx, companyID, receipt.DriverID); err != nil {
		return nil, common.NotFoundf("receipt")
	}
	return receipt, nil
}

func (s *receiptService) ListByDriver(ctx context.Context, companyID, driverID uuid.UUID) ([]*models.Receipt, error) {
	if err := s.driverInCompany(ctx, companyID, driverID); err != nil {
		return nil, err
	}
	return s.receiptRepo.ListByDriver(ctx, driverID)
}

func (s *receiptService) FileURL(ctx context.Context, companyID, receiptID uuid.UUID) (string, error) {
	receipt, err := s.GetByID(ctx, companyID, receiptID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(s.bucket, receipt.FilePath, presignedURLExpiry)
}

func (s *receiptService) Delete(ctx context.Context, companyID, receiptID uuid.UUID) error {
	receipt, err := s.GetByID(ctx, companyID, receiptID)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteReceipt(ctx, s.bucket, receipt.FilePath); err != nil {
		log.Printf("WARN: failed to delete receipt object %s: %v", receipt.FilePath, err)
	}
	return s.receiptRepo.Delete(ctx, receiptID)
}

// ProcessExtraction runs the extractor for a Processing receipt and lands it
// in a terminal status. Errors are logged, not returned, because the caller
// is a fire-and-forget background task.
func (s *receiptService) ProcessExtraction(ctx context.Context, receiptID uuid.UUID) {
	receipt, err := s.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		log.Printf("extraction: failed to load receipt %s: %v", receiptID, err)
		return
	}
	if receipt.Status != models.ReceiptStatusProcessing {
		return // already terminal
	}

	result, err := s.extractor.Extract(ctx, receipt)
	if err != nil {
		if !errors.Is(err, ErrExtractionFailed) {
			log.Printf("extraction: receipt %s: %v", receiptID, err)
		}
		if err := s.receiptRepo.SetStatus(ctx, receiptID, models.ReceiptStatusFailed); err != nil {
			log.Printf("extraction: failed to mark receipt %s failed: %v", receiptID, err)
		}
		return
	}

	receipt.Vendor = &result.Vendor
	receipt.ReceiptDate = &result.ReceiptDate
	receipt.Amount = &result.Amount
	receipt.Category = &result.Category
	receipt.Items = result.Items

	if err := s.receiptRepo.SetExtractionResult(ctx, receipt); err != nil {
		log.Printf("extraction: failed to store result for receipt %s: %v", receiptID, err)
	}
}

// FailStuck flips receipts stuck in Processing past the deadline to Failed.
func (s *receiptService) FailStuck(ctx context.Context, olderThan time.Time) (int, error) {
	stuck, err := s.receiptRepo.ListStuckProcessing(ctx, olderThan)
	if err != nil {
		return 0, err
	}
	failed := 0
	for _, receipt := range stuck {
		if err := s.receiptRepo.SetStatus(ctx, receipt.ID, models.ReceiptStatusFailed); err != nil {
			log.Printf("sweep: failed to mark receipt %s failed: %v", receipt.ID, err)
			continue
		}
		failed++
	}
	return failed, nil
}
