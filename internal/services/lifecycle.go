package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockyard/internal/domain"
	"stockyard/internal/repos"
	"stockyard/internal/validate"
)

const nativeAuctionWindow = 7 * 24 * time.Hour

// LifecycleService owns auction creation and the destination/status state
// machine. It is the only writer of auction rows outside the delete and
// export paths.
type LifecycleService struct {
	Auctions  *repos.AuctionRepo
	Shelves   *repos.ShelfRepo
	Batches   *repos.BatchRepo
	Codes     *CodeService
	Publisher ChannelPublisher
}

func NewLifecycleService(auctions *repos.AuctionRepo, shelves *repos.ShelfRepo, batches *repos.BatchRepo, codes *CodeService, pub ChannelPublisher) *LifecycleService {
	return &LifecycleService{Auctions: auctions, Shelves: shelves, Batches: batches, Codes: codes, Publisher: pub}
}

type CreateAuctionInput struct {
	Title            string
	Description      string
	Brand            string
	Category         string
	Condition        string
	WeightLbs        float64
	WeightOz         float64
	BrandTier        string
	StockQuantity    int
	Cost             float64
	RetailPrice      float64
	StartingBid      float64
	Status           string
	ShelfID          *int64
	ScannedByStaffID *int64
	BatchID          *string
	ShowOnHomepage   bool
}

type PublishResult struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	Destination        string  `json:"destination"`
	EndTime            *string `json:"endTime"`
	ExternalStatus     *string `json:"externalStatus"`
	ExternalListingID  *string `json:"externalListingId"`
	ExternalListingURL *string `json:"externalListingUrl"`
	ExternalPayload    *string `json:"externalPayload"`
}

type StatusResult struct {
	ID      int64   `json:"id"`
	Status  string  `json:"status"`
	EndTime *string `json:"endTime"`
}

type ShelfAssignment struct {
	ID      int64  `json:"id"`
	ShelfID *int64 `json:"shelfId"`
}

// List returns all auctions, newest first.
func (s *LifecycleService) List() ([]domain.Auction, error) {
	return s.Auctions.ListAll()
}

// Get returns one auction.
func (s *LifecycleService) Get(id int64) (domain.Auction, error) {
	a, err := s.Auctions.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Auction{}, &NotFoundError{Entity: "auction", ID: id}
	}
	return a, err
}

// Create registers a new auction with a freshly allocated internal code.
// Allocation races are resolved by retrying on a UNIQUE violation.
func (s *LifecycleService) Create(in CreateAuctionInput) (domain.Auction, error) {
	title, ok := validate.Title(in.Title)
	if !ok {
		return domain.Auction{}, &ValidationError{Msg: "title is required"}
	}
	if in.ShelfID == nil {
		return domain.Auction{}, &ValidationError{Msg: "shelf reference is required"}
	}
	if _, err := s.Shelves.Get(*in.ShelfID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Auction{}, &NotFoundError{Entity: "shelf", ID: *in.ShelfID}
		}
		return domain.Auction{}, fmt.Errorf("resolve shelf: %w", err)
	}

	status := in.Status
	if status == "" {
		status = domain.StatusDraft
	}
	if !domain.ValidStatus(status) {
		return domain.Auction{}, &ValidationError{Msg: fmt.Sprintf("invalid status %q", status)}
	}

	batchID := in.BatchID
	if batchID == nil {
		id := uuid.NewString()
		if err := s.Batches.Insert(id, ""); err != nil {
			return domain.Auction{}, fmt.Errorf("create batch: %w", err)
		}
		batchID = &id
	}

	row := domain.Auction{
		Title:            title,
		Description:      in.Description,
		Brand:            in.Brand,
		Category:         in.Category,
		Condition:        in.Condition,
		WeightLbs:        in.WeightLbs,
		WeightOz:         in.WeightOz,
		BrandTier:        in.BrandTier,
		StockQuantity:    in.StockQuantity,
		Cost:             in.Cost,
		RetailPrice:      in.RetailPrice,
		StartingBid:      in.StartingBid,
		Status:           status,
		Destination:      domain.DestAuction,
		ShelfID:          in.ShelfID,
		ScannedByStaffID: in.ScannedByStaffID,
		BatchID:          batchID,
		ShowOnHomepage:   in.ShowOnHomepage,
	}
	if row.StockQuantity < 1 {
		row.StockQuantity = 1
	}

	// Scan-then-insert has no reservation step; a concurrent creator can
	// compute the same code. The UNIQUE index plus this bounded retry
	// closes the gap.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		code, err := s.Codes.NextInternalCode()
		if err != nil {
			return domain.Auction{}, err
		}
		row.InternalCode = code

		id, err := s.Auctions.Insert(row)
		if err == nil {
			return s.Auctions.Get(id)
		}
		if !isUniqueViolation(err) {
			return domain.Auction{}, fmt.Errorf("insert auction: %w", err)
		}
		lastErr = err
	}
	return domain.Auction{}, fmt.Errorf("allocate internal code: %w", lastErr)
}

// Publish moves an auction to a sale channel. The native channel resets
// status to active with a fresh 7-day window and clears every mirror
// field; external channels leave status alone and record a listing.
func (s *LifecycleService) Publish(id int64, destination string) (PublishResult, error) {
	if !domain.ValidDestination(destination) {
		return PublishResult{}, &ValidationError{Msg: fmt.Sprintf("invalid destination %q", destination)}
	}

	a, err := s.Auctions.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PublishResult{}, &NotFoundError{Entity: "auction", ID: id}
		}
		return PublishResult{}, fmt.Errorf("load auction: %w", err)
	}

	now := time.Now().UTC()
	if destination == domain.DestAuction {
		endTime := now.Add(nativeAuctionWindow).Format(time.RFC3339)
		rows, err := s.Auctions.SetNativePublish(id, endTime)
		if err != nil {
			return PublishResult{}, fmt.Errorf("publish to auction: %w", err)
		}
		if rows == 0 {
			return PublishResult{}, &NotFoundError{Entity: "auction", ID: id}
		}
	} else {
		listing, err := s.Publisher.Publish(destination, a, now)
		if err != nil {
			return PublishResult{}, fmt.Errorf("publish to %s: %w", destination, err)
		}
		rows, err := s.Auctions.SetExternalPublish(id, destination, listing.ID, listing.URL, listing.Payload, now.Format(time.RFC3339))
		if err != nil {
			return PublishResult{}, fmt.Errorf("publish to %s: %w", destination, err)
		}
		if rows == 0 {
			return PublishResult{}, &NotFoundError{Entity: "auction", ID: id}
		}
	}

	a, err = s.Auctions.Get(id)
	if err != nil {
		return PublishResult{}, fmt.Errorf("reload auction: %w", err)
	}
	return PublishResult{
		ID:                 a.ID,
		Status:             a.Status,
		Destination:        a.Destination,
		EndTime:            a.EndTime,
		ExternalStatus:     a.ExternalStatus,
		ExternalListingID:  a.ExternalListingID,
		ExternalListingURL: a.ExternalListingURL,
		ExternalPayload:    a.ExternalPayload,
	}, nil
}

// UpdateStatus changes the lifecycle stage. Only an activation with a
// positive duration recomputes end_time; every other update leaves the
// window untouched.
func (s *LifecycleService) UpdateStatus(id int64, status string, durationDays *float64) (StatusResult, error) {
	if !domain.ValidStatus(status) {
		return StatusResult{}, &ValidationError{Msg: fmt.Sprintf("invalid status %q", status)}
	}

	var endTime *string
	if status == domain.StatusActive && durationDays != nil && *durationDays > 0 {
		t := time.Now().UTC().Add(time.Duration(*durationDays * 24 * float64(time.Hour))).Format(time.RFC3339)
		endTime = &t
	}

	rows, err := s.Auctions.SetStatus(id, status, endTime)
	if err != nil {
		return StatusResult{}, fmt.Errorf("update status: %w", err)
	}
	if rows == 0 {
		return StatusResult{}, &NotFoundError{Entity: "auction", ID: id}
	}

	a, err := s.Auctions.Get(id)
	if err != nil {
		return StatusResult{}, fmt.Errorf("reload auction: %w", err)
	}
	return StatusResult{ID: a.ID, Status: a.Status, EndTime: a.EndTime}, nil
}

// ReassignShelf moves an auction onto a shelf, or off any shelf with nil.
func (s *LifecycleService) ReassignShelf(id int64, shelfID *int64) (ShelfAssignment, error) {
	if shelfID != nil {
		if _, err := s.Shelves.Get(*shelfID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ShelfAssignment{}, &NotFoundError{Entity: "shelf", ID: *shelfID}
			}
			return ShelfAssignment{}, fmt.Errorf("resolve shelf: %w", err)
		}
	}

	rows, err := s.Auctions.SetShelf(id, shelfID)
	if err != nil {
		return ShelfAssignment{}, fmt.Errorf("reassign shelf: %w", err)
	}
	if rows == 0 {
		return ShelfAssignment{}, &NotFoundError{Entity: "auction", ID: id}
	}
	return ShelfAssignment{ID: id, ShelfID: shelfID}, nil
}
