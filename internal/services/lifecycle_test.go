package services_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"stockyard/internal/domain"
	"stockyard/internal/repos"
	"stockyard/internal/services"
)

func lifecycle(db *sqlx.DB) *services.LifecycleService {
	auctionRepo := repos.NewAuctionRepo(db)
	return services.NewLifecycleService(
		auctionRepo,
		repos.NewShelfRepo(db),
		repos.NewBatchRepo(db),
		services.NewCodeService(auctionRepo),
		services.NewMockPublisher(),
	)
}

func TestCreate_AllocatesCodeAndDefaults(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)

	shelf, err := repos.NewShelfRepo(db).Insert("Bins Shelf 1", "BIN01")
	require.NoError(t, err)

	a, err := svc.Create(services.CreateAuctionInput{Title: "Old Clock", ShelfID: &shelf.ID})
	require.NoError(t, err)
	require.Equal(t, "OA000000001", a.InternalCode)
	require.Equal(t, domain.StatusDraft, a.Status)
	require.Equal(t, domain.DestAuction, a.Destination)
	require.NotNil(t, a.BatchID, "a batch is created when none is supplied")
	require.Equal(t, shelf.ID, *a.ShelfID)

	b, err := svc.Create(services.CreateAuctionInput{Title: "Older Clock", ShelfID: &shelf.ID})
	require.NoError(t, err)
	require.Equal(t, "OA000000002", b.InternalCode)
}

func TestCreate_RequiresTitleAndShelf(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)

	var ve *services.ValidationError
	_, err := svc.Create(services.CreateAuctionInput{Title: "  "})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Create(services.CreateAuctionInput{Title: "No Shelf"})
	require.ErrorAs(t, err, &ve)
}

func TestPublish_InvalidDestination(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	var ve *services.ValidationError
	_, err := svc.Publish(id, "etsy")
	require.ErrorAs(t, err, &ve)
}

func TestPublish_MissingAuction(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)

	var nf *services.NotFoundError
	_, err := svc.Publish(9999, domain.DestAuction)
	require.ErrorAs(t, err, &nf)
}

func TestPublish_NativeResetsChannelState(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	// Park it on an external channel first.
	_, err := svc.Publish(id, domain.DestEbay)
	require.NoError(t, err)

	before := time.Now().UTC()
	res, err := svc.Publish(id, domain.DestAuction)
	require.NoError(t, err)

	require.Equal(t, domain.StatusActive, res.Status)
	require.Equal(t, domain.DestAuction, res.Destination)
	require.Nil(t, res.ExternalStatus)
	require.Nil(t, res.ExternalListingID)
	require.Nil(t, res.ExternalListingURL)
	require.Nil(t, res.ExternalPayload)

	require.NotNil(t, res.EndTime)
	end, err := time.Parse(time.RFC3339, *res.EndTime)
	require.NoError(t, err)
	require.True(t, end.After(before), "end time must be in the future")
	require.WithinDuration(t, before.Add(7*24*time.Hour), end, time.Minute)
}

func TestPublish_EbayIssuesListing(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	res, err := svc.Publish(id, domain.DestEbay)
	require.NoError(t, err)

	require.NotNil(t, res.ExternalStatus)
	require.Equal(t, "listed", *res.ExternalStatus)
	require.NotNil(t, res.ExternalListingID)
	require.Regexp(t, regexp.MustCompile(`^EBAY-\d+$`), *res.ExternalListingID)
	require.NotNil(t, res.ExternalListingURL)
	require.Contains(t, *res.ExternalListingURL, *res.ExternalListingID)
}

func TestPublish_EbayLeavesStatusAlone(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	a, err := svc.Get(id)
	require.NoError(t, err)
	statusBefore := a.Status

	res, err := svc.Publish(id, domain.DestEbay)
	require.NoError(t, err)
	require.Equal(t, statusBefore, res.Status)
}

func TestPublish_AmazonListingShape(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000042", "Lamp", 19.99)

	res, err := svc.Publish(id, domain.DestAmazon)
	require.NoError(t, err)

	require.NotNil(t, res.ExternalListingID)
	require.Regexp(t, regexp.MustCompile(`^AMAZON-\d+$`), *res.ExternalListingID)
	require.NotNil(t, res.ExternalListingURL)
	require.Equal(t, "https://www.amazon.com/dp/"+*res.ExternalListingID, *res.ExternalListingURL)

	require.NotNil(t, res.ExternalPayload)
	var payload struct {
		Platform    string  `json:"platform"`
		SubmittedAt string  `json:"submittedAt"`
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(*res.ExternalPayload), &payload))
	require.Equal(t, "amazon", payload.Platform)
	require.Equal(t, "Lamp", payload.Title)
	require.Equal(t, 19.99, payload.Price)
	_, err = time.Parse(time.RFC3339, payload.SubmittedAt)
	require.NoError(t, err)
}

func TestUpdateStatus_EndedPreservesEndTime(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	_, err := svc.Publish(id, domain.DestAuction) // sets an end time
	require.NoError(t, err)
	a, err := svc.Get(id)
	require.NoError(t, err)
	endBefore := *a.EndTime

	res, err := svc.UpdateStatus(id, domain.StatusEnded, nil)
	require.NoError(t, err)
	require.Equal(t, domain.StatusEnded, res.Status)
	require.NotNil(t, res.EndTime)
	require.Equal(t, endBefore, *res.EndTime)
}

func TestUpdateStatus_ActiveWithDurationRecomputes(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	days := 3.0
	before := time.Now().UTC()
	res, err := svc.UpdateStatus(id, domain.StatusActive, &days)
	require.NoError(t, err)
	require.NotNil(t, res.EndTime)
	end, err := time.Parse(time.RFC3339, *res.EndTime)
	require.NoError(t, err)
	require.WithinDuration(t, before.Add(72*time.Hour), end, time.Minute)
}

func TestUpdateStatus_ActiveWithoutDurationKeepsEndTime(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	res, err := svc.UpdateStatus(id, domain.StatusActive, nil)
	require.NoError(t, err)
	require.Nil(t, res.EndTime, "no prior window and no duration means none is invented")
}

func TestUpdateStatus_Invalid(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	var ve *services.ValidationError
	_, err := svc.UpdateStatus(id, "archived", nil)
	require.ErrorAs(t, err, &ve)

	var nf *services.NotFoundError
	_, err = svc.UpdateStatus(9999, domain.StatusEnded, nil)
	require.ErrorAs(t, err, &nf)
}

func TestList_NewestFirst(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)

	_, err := db.Exec(`
		INSERT INTO auctions(internal_code, title, created_at) VALUES
		  ('OA000000001', 'oldest', '2026-01-01 10:00:00'),
		  ('OA000000002', 'middle', '2026-02-01 10:00:00'),
		  ('OA000000003', 'newest', '2026-03-01 10:00:00')
	`)
	require.NoError(t, err)

	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "newest", list[0].Title)
	require.Equal(t, "oldest", list[2].Title)
}

func TestReassignShelf(t *testing.T) {
	db := memdb(t)
	svc := lifecycle(db)
	id := seedAuction(t, db, "OA000000001", "Thing", 5)

	shelf, err := repos.NewShelfRepo(db).Insert("Bins Shelf 1", "BIN01")
	require.NoError(t, err)

	res, err := svc.ReassignShelf(id, &shelf.ID)
	require.NoError(t, err)
	require.Equal(t, shelf.ID, *res.ShelfID)

	// nil takes it off the shelf
	res, err = svc.ReassignShelf(id, nil)
	require.NoError(t, err)
	require.Nil(t, res.ShelfID)

	var nf *services.NotFoundError
	_, err = svc.ReassignShelf(9999, &shelf.ID)
	require.ErrorAs(t, err, &nf)
}
