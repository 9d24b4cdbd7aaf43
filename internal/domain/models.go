package domain

// Auction statuses.
const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusEnded  = "ended"
	StatusSold   = "sold"
)

// Sale channels.
const (
	DestAuction = "auction"
	DestEbay    = "ebay"
	DestAmazon  = "amazon"
)

type Auction struct {
	ID           int64  `db:"id" json:"id"`
	InternalCode string `db:"internal_code" json:"internalCode"`
	Title        string `db:"title" json:"title"`
	Description  string `db:"description" json:"description"`

	Brand         string  `db:"brand" json:"brand"`
	Category      string  `db:"category" json:"category"`
	Condition     string  `db:"condition" json:"condition"`
	WeightLbs     float64 `db:"weight_lbs" json:"weightLbs"`
	WeightOz      float64 `db:"weight_oz" json:"weightOz"`
	BrandTier     string  `db:"brand_tier" json:"brandTier"`
	StockQuantity int     `db:"stock_quantity" json:"stockQuantity"`
	Cost          float64 `db:"cost" json:"cost"`

	RetailPrice float64 `db:"retail_price" json:"retailPrice"`
	StartingBid float64 `db:"starting_bid" json:"startingBid"`
	CurrentBid  float64 `db:"current_bid" json:"currentBid"`
	BidCount    int     `db:"bid_count" json:"bidCount"`

	Status      string  `db:"status" json:"status"`           // draft | active | ended | sold
	Destination string  `db:"destination" json:"destination"` // auction | ebay | amazon
	EndTime     *string `db:"end_time" json:"endTime"`

	// Mirror fields, meaningful only when destination != auction.
	ExternalStatus     *string `db:"external_status" json:"externalStatus"`
	ExternalListingID  *string `db:"external_listing_id" json:"externalListingId"`
	ExternalListingURL *string `db:"external_listing_url" json:"externalListingUrl"`
	ExternalPayload    *string `db:"external_payload" json:"externalPayload"`
	LastSyncAt         *string `db:"last_sync_at" json:"lastSyncAt"`
	LastExportedAt     *string `db:"last_exported_at" json:"lastExportedAt"`

	ShelfID          *int64  `db:"shelf_id" json:"shelfId"`
	ScannedByStaffID *int64  `db:"scanned_by_staff_id" json:"scannedByStaffId"`
	BatchID          *string `db:"batch_id" json:"batchId"`

	SoldAt    *string  `db:"sold_at" json:"soldAt"`
	SoldPrice *float64 `db:"sold_price" json:"soldPrice"`

	ShowOnHomepage bool   `db:"show_on_homepage" json:"showOnHomepage"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
}

type Shelf struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Code      string `db:"code" json:"code"`
	ItemCount int    `db:"item_count" json:"itemCount"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Tag struct {
	ID        int64  `db:"id" json:"id"`
	AuctionID int64  `db:"auction_id" json:"auctionId"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Bid struct {
	ID        int64   `db:"id" json:"id"`
	AuctionID int64   `db:"auction_id" json:"auctionId"`
	Bidder    string  `db:"bidder" json:"bidder"`
	Amount    float64 `db:"amount" json:"amount"`
	CreatedAt string  `db:"created_at" json:"createdAt"`
}

type WatchlistEntry struct {
	ID        int64  `db:"id" json:"id"`
	AuctionID int64  `db:"auction_id" json:"auctionId"`
	SessionID string `db:"session_id" json:"sessionId"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Batch struct {
	ID        string `db:"id" json:"id"`
	Label     string `db:"label" json:"label"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusActive, StatusEnded, StatusSold:
		return true
	}
	return false
}

func ValidDestination(d string) bool {
	switch d {
	case DestAuction, DestEbay, DestAmazon:
		return true
	}
	return false
}
