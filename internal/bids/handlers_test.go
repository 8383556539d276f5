package bids

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastex-backend/internal/models"
)

func TestPlaceBidHandler_MissingFields(t *testing.T) {
	svc, _, _ := setupBidsTest(t)
	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Post("/bids", h.PlaceBid)

	body, _ := json.Marshal(map[string]interface{}{})
	req := httptest.NewRequest("POST", "/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPlaceBidHandler_ListingNotFound(t *testing.T) {
	svc, _, db := setupBidsTest(t)
	buyer := createUser(t, db, "alice", models.RoleBuyer)
	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Post("/bids", h.PlaceBid)

	body, _ := json.Marshal(map[string]interface{}{
		"listingId": 42, "buyerId": buyer.ID, "amount": 100,
	})
	req := httptest.NewRequest("POST", "/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestPlaceBidHandler_AcceptedAndLeaderboard(t *testing.T) {
	svc, _, db := setupBidsTest(t)
	seller := createUser(t, db, "seller", models.RoleSeller)
	buyer := createUser(t, db, "alice", models.RoleBuyer)
	l := createBiddingListing(t, db, seller.ID, 100)

	h := &Handlers{Service: svc}
	app := fiber.New()
	app.Post("/bids", h.PlaceBid)
	app.Get("/listings/:id/bids", h.ListBids)

	body, _ := json.Marshal(map[string]interface{}{
		"listingId": l.ID, "buyerId": buyer.ID, "amount": 150,
	})
	req := httptest.NewRequest("POST", "/bids", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	req = httptest.NewRequest("GET", "/listings/1/bids", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])
	data, _ := result["data"].([]interface{})
	require.Len(t, data, 1)
	row, _ := data[0].(map[string]interface{})
	assert.Equal(t, "alice", row["buyer_name"])
	assert.EqualValues(t, 150, row["amount"])
}
