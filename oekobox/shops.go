package oekobox

import (
	"bufio"
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"gooekobox/oekobox/models"
)

// ShopListURL serves the public list of all shops; it needs no session and no
// per-shop base URL.
const ShopListURL = "https://oekobox-online.eu/v3/shoplist.js.jsp"

// shopLine matches one feed entry: [lat,lng,"name",lat2,lng2,"shop_id"]
var shopLine = regexp.MustCompile(`^\[(-?[\d.]+),(-?[\d.]+),"([^"]+)",(-?[\d.]+),(-?[\d.]+),"([^"]+)"\]$`)

// GetAvailableShops fetches and parses the public shop list.
func GetAvailableShops(ctx context.Context) ([]models.Shop, error) {
	return fetchShops(ctx, &http.Client{Timeout: 30 * time.Second}, ShopListURL)
}

func fetchShops(ctx context.Context, client *http.Client, rawURL string) ([]models.Shop, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ConnectionError{Message: "failed to create shop list request", Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &ConnectionError{Message: "failed to fetch shop list", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "shop list unavailable"}
	}

	// The feed is a legacy JSP serving Latin-1; umlauts in shop names arrive
	// broken without the transform.
	scanner := bufio.NewScanner(transform.NewReader(resp.Body, charmap.ISO8859_1.NewDecoder()))

	var shops []models.Shop
	for scanner.Scan() {
		line := strings.TrimSuffix(strings.TrimSpace(scanner.Text()), ",")
		shop, ok := parseShopLine(line)
		if !ok {
			continue
		}
		shops = append(shops, shop)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConnectionError{Message: "failed to read shop list", Err: err}
	}
	return shops, nil
}

func parseShopLine(line string) (models.Shop, bool) {
	match := shopLine.FindStringSubmatch(line)
	if match == nil {
		return models.Shop{}, false
	}

	lat, err1 := strconv.ParseFloat(match[1], 64)
	lng, err2 := strconv.ParseFloat(match[2], 64)
	lat2, err3 := strconv.ParseFloat(match[4], 64)
	lng2, err4 := strconv.ParseFloat(match[5], 64)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return models.Shop{}, false
	}

	// Entries without a primary coordinate fall back to the delivery one.
	if lat == -1 || lng == -1 {
		lat, lng = lat2, lng2
	}

	shop := models.Shop{
		ID:        match[6],
		Name:      match[3],
		Latitude:  lat,
		Longitude: lng,
	}
	if lat2 != -1 {
		shop.DeliveryLat = &lat2
	}
	if lng2 != -1 {
		shop.DeliveryLng = &lng2
	}
	return shop, true
}
