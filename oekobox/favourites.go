package oekobox

import (
	"context"
	"net/url"

	"gooekobox/oekobox/models"
)

// GetFavourites fetches the customer's pinned items. Shop versions without
// the direct endpoint carry favourites inside the dates1 feed.
func (c *OekoboxClient) GetFavourites(ctx context.Context) ([]models.Favourite, error) {
	body, err := c.apiGet(ctx, "client/favourites", nil)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		body, err = c.baseGet(ctx, "dates1", nil)
		if err != nil {
			return nil, err
		}
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.FavouritesFromLists(lists, c.username), nil
}

// AddFavourite pins an item.
func (c *OekoboxClient) AddFavourite(ctx context.Context, itemID string) error {
	if itemID == "" {
		return &ValidationError{Message: "item id must not be empty"}
	}
	params := url.Values{}
	params.Set("id", itemID)
	_, err := c.apiGet(ctx, "client/addfavourites", params)
	return err
}

// RemoveFavourite unpins an item.
func (c *OekoboxClient) RemoveFavourite(ctx context.Context, itemID string) error {
	if itemID == "" {
		return &ValidationError{Message: "item id must not be empty"}
	}
	params := url.Values{}
	params.Set("id", itemID)
	_, err := c.apiGet(ctx, "client/dropfavourites", params)
	return err
}

// GetSubscriptions fetches the customer's recurring box subscriptions, with
// the same dates1 fallback as favourites.
func (c *OekoboxClient) GetSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	body, err := c.apiGet(ctx, "client/subscriptions", nil)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		body, err = c.baseGet(ctx, "dates1", nil)
		if err != nil {
			return nil, err
		}
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.SubscriptionsFromLists(lists, c.username), nil
}
