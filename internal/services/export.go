package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"stockyard/internal/domain"
	"stockyard/internal/repos"
	"stockyard/internal/validate"
)

const snapshotVersion = 1

// ExportService marks auctions as exported and produces full-table
// snapshots for downstream tooling.
type ExportService struct {
	Auctions *repos.AuctionRepo
	Shelves  *repos.ShelfRepo
	Tags     *repos.TagRepo
}

func NewExportService(auctions *repos.AuctionRepo, shelves *repos.ShelfRepo, tags *repos.TagRepo) *ExportService {
	return &ExportService{Auctions: auctions, Shelves: shelves, Tags: tags}
}

type Snapshot struct {
	SnapshotID string       `json:"snapshotId"`
	Version    int          `json:"version"`
	ExportedAt string       `json:"exportedAt"`
	Data       SnapshotData `json:"data"`
}

type SnapshotData struct {
	Auctions []domain.Auction `json:"auctions"`
	Shelves  []domain.Shelf   `json:"shelves"`
	Tags     []domain.Tag     `json:"tags"`
}

// MarkExported stamps the export fields on every matching auction and
// returns how many rows matched. Ids that match nothing are not an error.
func (s *ExportService) MarkExported(ids []int64) (int64, error) {
	ids, ok := validate.IDs(ids)
	if !ok {
		return 0, &ValidationError{Msg: "ids must be a non-empty set of positive integers"}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	count, err := s.Auctions.MarkExported(ids, now)
	if err != nil {
		return 0, fmt.Errorf("mark exported: %w", err)
	}
	return count, nil
}

// TakeSnapshot reads auctions, shelves, and tags in full. The three reads
// are not transactional; a snapshot may straddle concurrent writes, which
// is accepted for this export path.
func (s *ExportService) TakeSnapshot() (Snapshot, error) {
	auctions, err := s.Auctions.ListAll()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot auctions: %w", err)
	}
	shelves, err := s.Shelves.List()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot shelves: %w", err)
	}
	tags, err := s.Tags.ListAll()
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot tags: %w", err)
	}

	// Empty tables serialize as [] rather than null.
	if auctions == nil {
		auctions = []domain.Auction{}
	}
	if shelves == nil {
		shelves = []domain.Shelf{}
	}
	if tags == nil {
		tags = []domain.Tag{}
	}

	return Snapshot{
		SnapshotID: uuid.NewString(),
		Version:    snapshotVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Data: SnapshotData{
			Auctions: auctions,
			Shelves:  shelves,
			Tags:     tags,
		},
	}, nil
}
