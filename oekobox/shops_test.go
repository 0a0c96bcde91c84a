package oekobox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchShops(t *testing.T) {
	// Latin-1 feed: 0xfc is ü.
	feed := "[52.520008,13.404954,\"Organic Market Berlin\",52.530008,13.414954,\"berlin_market\"],\n" +
		"[-1,-1,\"M\xfcller Hof\",48.137154,11.576124,\"mueller_hof\"],\n" +
		"not a shop line\n" +
		"[48.2,11.6,\"Boxkiste\",-1,-1,\"boxkiste\"]\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=ISO-8859-1")
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(server.Close)

	shops, err := fetchShops(context.Background(), server.Client(), server.URL)
	require.NoError(t, err)
	require.Len(t, shops, 3)

	assert.Equal(t, "berlin_market", shops[0].ID)
	assert.Equal(t, "Organic Market Berlin", shops[0].Name)
	assert.InDelta(t, 52.520008, shops[0].Latitude, 1e-9)
	require.NotNil(t, shops[0].DeliveryLat)
	assert.InDelta(t, 52.530008, *shops[0].DeliveryLat, 1e-9)

	// Missing primary coordinates fall back to the delivery pair, and the
	// umlaut survives the charset transform.
	assert.Equal(t, "Müller Hof", shops[1].Name)
	assert.InDelta(t, 48.137154, shops[1].Latitude, 1e-9)

	// -1 delivery coordinates stay unset.
	assert.Nil(t, shops[2].DeliveryLat)
	assert.Nil(t, shops[2].DeliveryLng)
}

func TestFetchShopsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := fetchShops(context.Background(), server.Client(), server.URL)
	require.Error(t, err)
	assert.True(t, IsAPI(err))
}

func TestFetchShopsUnreachable(t *testing.T) {
	client := &http.Client{Timeout: 200 * time.Millisecond}
	_, err := fetchShops(context.Background(), client, "http://127.0.0.1:1/shoplist.js.jsp")
	require.Error(t, err)
	assert.True(t, IsConnection(err))
}
