package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stockyard/internal/http/handlers"
	"stockyard/internal/repos"
)

func testApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, repos.EnsureSchema(db))
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db)

	app := fiber.New()
	app.Use(requestid.New())

	api := app.Group("/api/v1")
	api.Get("/auctions", deps.AuctionHandler.List)
	api.Post("/auctions", deps.AuctionHandler.Create)
	api.Get("/auctions/:id", deps.AuctionHandler.Get)
	api.Delete("/auctions/:id", deps.AuctionHandler.Delete)
	api.Post("/auctions/:id/publish", deps.AuctionHandler.Publish)
	api.Patch("/auctions/:id/status", deps.AuctionHandler.UpdateStatus)
	api.Patch("/auctions/:id/shelf", deps.AuctionHandler.ReassignShelf)
	api.Get("/shelves", deps.ShelfHandler.List)
	api.Post("/shelves", deps.ShelfHandler.Create)
	api.Post("/export/mark", deps.ExportHandler.Mark)
	api.Get("/export/snapshot", deps.ExportHandler.Snapshot)
	api.Get("/codes/next", deps.CodesHandler.Next)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, b
}

func TestCreateAuction_FullFlow(t *testing.T) {
	app, _ := testApp(t)

	// Shelves must exist before intake.
	code, body := doJSON(t, app, "POST", "/api/v1/shelves", `{"name":"Bins Shelf 1","code":"BIN01"}`)
	require.Equal(t, fiber.StatusCreated, code, string(body))
	var shelf struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &shelf))

	code, body = doJSON(t, app, "POST", "/api/v1/auctions",
		`{"title":"Lamp","retailPrice":19.99,"shelfId":`+jsonInt(shelf.ID)+`}`)
	require.Equal(t, fiber.StatusCreated, code, string(body))
	var created struct {
		ID           int64  `json:"id"`
		InternalCode string `json:"internalCode"`
		Status       string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "OA000000001", created.InternalCode)
	require.Equal(t, "draft", created.Status)

	code, _ = doJSON(t, app, "GET", "/api/v1/auctions/"+jsonInt(created.ID), "")
	require.Equal(t, fiber.StatusOK, code)

	code, body = doJSON(t, app, "DELETE", "/api/v1/auctions/"+jsonInt(created.ID), "")
	require.Equal(t, fiber.StatusOK, code)
	require.Contains(t, string(body), `"success":true`)

	code, _ = doJSON(t, app, "GET", "/api/v1/auctions/"+jsonInt(created.ID), "")
	require.Equal(t, fiber.StatusNotFound, code)
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestCreateAuction_MissingFields(t *testing.T) {
	app, _ := testApp(t)

	code, _ := doJSON(t, app, "POST", "/api/v1/auctions", `{"title":""}`)
	require.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, "POST", "/api/v1/auctions", `{"title":"No Shelf"}`)
	require.Equal(t, fiber.StatusBadRequest, code)
}

func TestPublish_StatusCodes(t *testing.T) {
	app, _ := testApp(t)

	code, _ := doJSON(t, app, "POST", "/api/v1/auctions/1/publish", `{"destination":"etsy"}`)
	require.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, "POST", "/api/v1/auctions/1/publish", `{"destination":"ebay"}`)
	require.Equal(t, fiber.StatusNotFound, code)

	code, _ = doJSON(t, app, "POST", "/api/v1/auctions/abc/publish", `{"destination":"ebay"}`)
	require.Equal(t, fiber.StatusBadRequest, code)
}

func TestShelves_ListEnsuresCanonical(t *testing.T) {
	app, _ := testApp(t)

	code, body := doJSON(t, app, "GET", "/api/v1/shelves", "")
	require.Equal(t, fiber.StatusOK, code)
	var shelves []struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &shelves))
	require.Len(t, shelves, 64)
}

func TestShelves_DuplicateCodeIs409(t *testing.T) {
	app, _ := testApp(t)

	code, _ := doJSON(t, app, "POST", "/api/v1/shelves", `{"name":"A","code":"OVR1"}`)
	require.Equal(t, fiber.StatusCreated, code)
	code, _ = doJSON(t, app, "POST", "/api/v1/shelves", `{"name":"B","code":"ovr1"}`)
	require.Equal(t, fiber.StatusConflict, code)

	code, _ = doJSON(t, app, "POST", "/api/v1/shelves", `{"name":"","code":"X1"}`)
	require.Equal(t, fiber.StatusBadRequest, code)
}

func TestExportMark_EmptyIdsIs400(t *testing.T) {
	app, _ := testApp(t)

	code, _ := doJSON(t, app, "POST", "/api/v1/export/mark", `{"ids":[]}`)
	require.Equal(t, fiber.StatusBadRequest, code)

	code, body := doJSON(t, app, "POST", "/api/v1/export/mark", `{"ids":[5,6]}`)
	require.Equal(t, fiber.StatusOK, code)
	require.Contains(t, string(body), `"count":0`)
}

func TestCodesNext_Preview(t *testing.T) {
	app, _ := testApp(t)

	code, body := doJSON(t, app, "GET", "/api/v1/codes/next", "")
	require.Equal(t, fiber.StatusOK, code)
	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, "OA000000001", out.Code)
}

func TestSnapshot_Shape(t *testing.T) {
	app, _ := testApp(t)

	code, body := doJSON(t, app, "GET", "/api/v1/export/snapshot", "")
	require.Equal(t, fiber.StatusOK, code)
	var snap struct {
		Version    int             `json:"version"`
		ExportedAt string          `json:"exportedAt"`
		Data       json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &snap))
	require.Equal(t, 1, snap.Version)
	require.NotEmpty(t, snap.ExportedAt)
	require.Contains(t, string(snap.Data), `"auctions"`)
}
