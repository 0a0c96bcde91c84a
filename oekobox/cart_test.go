package oekobox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartRejectsNegativeQuantity(t *testing.T) {
	shop, client := startFakeShop(t)

	_, err := client.AddToCart(context.Background(), "101", -1)
	assert.True(t, IsValidation(err))
	// Precondition failures never reach the network.
	assert.Equal(t, 0, shop.requestCount())
	assert.Equal(t, int32(0), client.tally.IssuedCount.Load())
}

func TestAddToCartRejectsEmptyItemID(t *testing.T) {
	shop, client := startFakeShop(t)

	_, err := client.AddToCart(context.Background(), "", 1)
	assert.True(t, IsValidation(err))
	assert.Equal(t, 0, shop.requestCount())
}

func TestCartRoundTripAccumulatesQuantities(t *testing.T) {
	_, client := startFakeShop(t)
	ctx := context.Background()

	_, err := client.Logon(ctx)
	require.NoError(t, err)

	_, err = client.AddToCart(ctx, "101", 2)
	require.NoError(t, err)
	_, err = client.AddToCart(ctx, "101", 3)
	require.NoError(t, err)
	cart, err := client.AddToCart(ctx, "201", 1)
	require.NoError(t, err)

	require.Len(t, cart, 2)

	got, err := client.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "101", got[0].ItemID)
	assert.InDelta(t, 5, got[0].Quantity, 1e-9)
	assert.Equal(t, "201", got[1].ItemID)
	assert.InDelta(t, 1, got[1].Quantity, 1e-9)
}

func TestRemoveFromCart(t *testing.T) {
	_, client := startFakeShop(t)
	ctx := context.Background()

	_, err := client.Logon(ctx)
	require.NoError(t, err)

	_, err = client.AddToCart(ctx, "101", 2)
	require.NoError(t, err)
	_, err = client.AddToCart(ctx, "201", 1)
	require.NoError(t, err)

	cart, err := client.RemoveFromCart(ctx, "101")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "201", cart[0].ItemID)
}

func TestClearCart(t *testing.T) {
	_, client := startFakeShop(t)
	ctx := context.Background()

	_, err := client.Logon(ctx)
	require.NoError(t, err)

	_, err = client.AddToCart(ctx, "101", 2)
	require.NoError(t, err)

	require.NoError(t, client.ClearCart(ctx))

	cart, err := client.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestAddToCartWithoutDeliveryDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"action":"CartAdd","result":"no_ddate"}`))
	}))
	t.Cleanup(server.Close)
	client := newTestClient(t, server.URL)

	_, err := client.AddToCart(context.Background(), "101", 1)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.ErrorContains(t, err, "delivery date")

	// The original API error stays reachable for callers that need it.
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no_ddate", apiErr.Code)
}

func TestCreateOrderMatchesCartSnapshot(t *testing.T) {
	_, client := startFakeShop(t)
	ctx := context.Background()

	_, err := client.Logon(ctx)
	require.NoError(t, err)

	_, err = client.AddToCart(ctx, "101", 2)
	require.NoError(t, err)
	_, err = client.AddToCart(ctx, "201", 1)
	require.NoError(t, err)

	cart, err := client.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 2)

	order, err := client.CreateOrder(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user@example.com", order.CustomerID)
	require.NotNil(t, order.Total)

	// Line items correspond 1:1 to the cart at call time.
	require.Len(t, order.Items, len(cart))
	for i, line := range order.Items {
		assert.Equal(t, cart[i].ItemID, line.ItemID)
		assert.InDelta(t, cart[i].Quantity, line.Quantity, 1e-9)
	}

	// The server converted the cart; a fresh read shows it empty.
	after, err := client.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, after)
}
