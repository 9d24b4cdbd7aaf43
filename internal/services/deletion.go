package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DeletionService removes an auction together with every dependent record
// in a single transaction. The schema declares no cascading deletes for
// these tables; this is the substitute.
type DeletionService struct {
	DB *sqlx.DB
}

func NewDeletionService(db *sqlx.DB) *DeletionService { return &DeletionService{DB: db} }

// DeleteAuction deletes tags, bids, and watchlist entries referencing the
// auction, then the auction row itself. Commits only if the auction row
// existed; any failure rolls the whole sequence back.
func (s *DeletionService) DeleteAuction(id int64) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return &TransactionError{Op: "delete auction", Cause: err}
	}
	// Rollback after a successful commit is a no-op; it must never mask
	// the original failure.
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM tags WHERE auction_id = ?`,
		`DELETE FROM bids WHERE auction_id = ?`,
		`DELETE FROM watchlist WHERE auction_id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return &TransactionError{Op: "delete auction", Cause: err}
		}
	}

	res, err := tx.Exec(`DELETE FROM auctions WHERE id = ?`, id)
	if err != nil {
		return &TransactionError{Op: "delete auction", Cause: err}
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return &TransactionError{Op: "delete auction", Cause: err}
	}
	if rows == 0 {
		return &NotFoundError{Entity: "auction", ID: id}
	}

	if err := tx.Commit(); err != nil {
		return &TransactionError{Op: "delete auction", Cause: fmt.Errorf("commit: %w", err)}
	}
	return nil
}
