package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stockyard/internal/domain"
)

type AuctionRepo struct{ db *sqlx.DB }

func NewAuctionRepo(db *sqlx.DB) *AuctionRepo { return &AuctionRepo{db: db} }

const auctionCols = `
	id, internal_code, title, description, brand, category, condition,
	weight_lbs, weight_oz, brand_tier, stock_quantity, cost,
	retail_price, starting_bid, current_bid, bid_count,
	status, destination, end_time,
	external_status, external_listing_id, external_listing_url, external_payload,
	last_sync_at, last_exported_at,
	shelf_id, scanned_by_staff_id, batch_id,
	sold_at, sold_price, show_on_homepage, created_at`

// ListAll returns every auction, newest first.
func (r *AuctionRepo) ListAll() ([]domain.Auction, error) {
	var out []domain.Auction
	err := r.db.Select(&out, `
		SELECT `+auctionCols+`
		FROM auctions
		ORDER BY datetime(created_at) DESC, id DESC
	`)
	return out, err
}

// Get returns one auction. sql.ErrNoRows when absent.
func (r *AuctionRepo) Get(id int64) (domain.Auction, error) {
	var a domain.Auction
	err := r.db.Get(&a, `SELECT `+auctionCols+` FROM auctions WHERE id = ?`, id)
	return a, err
}

// InternalCodes returns every code in the OA family.
func (r *AuctionRepo) InternalCodes() ([]string, error) {
	var codes []string
	err := r.db.Select(&codes, `SELECT internal_code FROM auctions WHERE internal_code LIKE 'OA%'`)
	return codes, err
}

// Insert creates a new auction row and returns its id.
func (r *AuctionRepo) Insert(a domain.Auction) (int64, error) {
	res, err := r.db.NamedExec(`
		INSERT INTO auctions(
			internal_code, title, description, brand, category, condition,
			weight_lbs, weight_oz, brand_tier, stock_quantity, cost,
			retail_price, starting_bid, current_bid, bid_count,
			status, destination, end_time,
			shelf_id, scanned_by_staff_id, batch_id, show_on_homepage
		) VALUES (
			:internal_code, :title, :description, :brand, :category, :condition,
			:weight_lbs, :weight_oz, :brand_tier, :stock_quantity, :cost,
			:retail_price, :starting_bid, :current_bid, :bid_count,
			:status, :destination, :end_time,
			:shelf_id, :scanned_by_staff_id, :batch_id, :show_on_homepage
		)
	`, a)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetNativePublish flips an auction back to the native channel: active,
// fresh end time, all mirror fields cleared. Returns rows matched.
func (r *AuctionRepo) SetNativePublish(id int64, endTime string) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE auctions
		SET destination = 'auction', status = 'active', end_time = ?,
		    external_status = NULL, external_listing_id = NULL,
		    external_listing_url = NULL, external_payload = NULL, last_sync_at = NULL
		WHERE id = ?
	`, endTime, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetExternalPublish mirrors a fabricated external listing onto the row.
// Status is left untouched. Returns rows matched.
func (r *AuctionRepo) SetExternalPublish(id int64, dest, listingID, listingURL, payload, syncedAt string) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE auctions
		SET destination = ?, external_status = 'listed',
		    external_listing_id = ?, external_listing_url = ?, external_payload = ?,
		    last_sync_at = ?
		WHERE id = ?
	`, dest, listingID, listingURL, payload, syncedAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetStatus updates the lifecycle stage. A non-nil endTime also recomputes
// the auction window; a nil one leaves end_time alone. Returns rows matched.
func (r *AuctionRepo) SetStatus(id int64, status string, endTime *string) (int64, error) {
	var (
		res sql.Result
		err error
	)
	if endTime != nil {
		res, err = r.db.Exec(`UPDATE auctions SET status = ?, end_time = ? WHERE id = ?`, status, *endTime, id)
	} else {
		res, err = r.db.Exec(`UPDATE auctions SET status = ? WHERE id = ?`, status, id)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// SetShelf moves an auction to a shelf (or off any shelf with nil).
// Returns rows matched.
func (r *AuctionRepo) SetShelf(id int64, shelfID *int64) (int64, error) {
	res, err := r.db.Exec(`UPDATE auctions SET shelf_id = ? WHERE id = ?`, shelfID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MarkExported stamps the export mirror fields on all matching rows in one
// statement and returns how many matched.
func (r *AuctionRepo) MarkExported(ids []int64, exportedAt string) (int64, error) {
	query, args, err := sqlx.In(`
		UPDATE auctions
		SET last_exported_at = ?, external_status = 'exported'
		WHERE id IN (?)
	`, exportedAt, ids)
	if err != nil {
		return 0, err
	}
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
