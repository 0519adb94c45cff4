package services

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geraud82/NeoPay-sub000/internal/models"
)

var ErrExtractionFailed = errors.New("receipt extraction failed")

// ReceiptExtractor pulls structured fields out of an uploaded receipt file.
// The production deployment would back this with an OCR provider; the
// simulated implementation stands in until one is wired up.
type ReceiptExtractor interface {
	Extract(ctx context.Context, receipt *models.Receipt) (*ExtractionResult, error)
}

type ExtractionResult struct {
	Vendor      string
	ReceiptDate time.Time
	Amount      float64
	Category    string
	Items       []*models.ReceiptItem
}

type simulatedExtractor struct {
	rng *rand.Rand
}

func NewSimulatedExtractor() ReceiptExtractor {
	return &simulatedExtractor{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var sampleVendors = []struct {
	name     string
	category string
	items    []string
}{
	{"Pilot Travel Center", "fuel", []string{"Diesel", "DEF"}},
	{"Love's Travel Stop", "fuel", []string{"Diesel"}},
	{"TA Truck Service", "maintenance", []string{"Oil change", "Tire rotation"}},
	{"Denny's", "meals", []string{"Breakfast combo", "Coffee"}},
	{"Blue Beacon", "maintenance", []string{"Truck wash"}},
}

// Extract fabricates a plausible extraction. File names containing
// "unreadable" simulate an extraction failure so the error path stays
// reachable end to end.
func (e *simulatedExtractor) Extract(ctx context.Context, receipt *models.Receipt) (*ExtractionResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.Contains(strings.ToLower(receipt.FileName), "unreadable") {
		return nil, ErrExtractionFailed
	}

	vendor := sampleVendors[e.rng.Intn(len(sampleVendors))]

	items := make([]*models.ReceiptItem, 0, len(vendor.items))
	var total float64
	for _, desc := range vendor.items {
		price := float64(e.rng.Intn(20000)+500) / 100
		qty := 1
		items = append(items, &models.ReceiptItem{
			ID:          uuid.New(),
			ReceiptID:   receipt.ID,
			Description: desc,
			Quantity:    qty,
			Price:       price,
		})
		total += price * float64(qty)
	}

	return &ExtractionResult{
		Vendor:      vendor.name,
		ReceiptDate: receipt.UploadDate.Truncate(24 * time.Hour),
		Amount:      total,
		Category:    vendor.category,
		Items:       items,
	}, nil
}
