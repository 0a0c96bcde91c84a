package oekobox

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"gooekobox/oekobox/models"
)

// GetCart fetches the current server-side cart.
func (c *OekoboxClient) GetCart(ctx context.Context) ([]models.CartItem, error) {
	body, err := c.apiGet(ctx, "cart/show", nil)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.CartFromLists(lists), nil
}

// AddToCart adds quantity of an item to the cart and returns the updated cart.
// Adding an item already in the cart accumulates its quantity. A negative
// quantity is rejected before any request is issued.
func (c *OekoboxClient) AddToCart(ctx context.Context, itemID string, quantity float64) ([]models.CartItem, error) {
	if itemID == "" {
		return nil, &ValidationError{Message: "item id must not be empty"}
	}
	if quantity < 0 {
		return nil, &ValidationError{Message: "quantity must not be negative"}
	}

	params := url.Values{}
	params.Set("id", itemID)
	params.Set("amount", strconv.FormatFloat(quantity, 'f', -1, 64))

	body, err := c.apiPost(ctx, "cart/add", params)
	if err != nil {
		// no_ddate means the cart cannot accept items until the customer
		// picks a delivery date.
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "no_ddate" {
			return nil, &ValidationError{
				Message: "a delivery date must be selected before adding items to the cart",
				Err:     err,
			}
		}
		return nil, err
	}

	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.CartFromLists(lists), nil
}

// RemoveFromCart removes an item's position and returns the updated cart.
func (c *OekoboxClient) RemoveFromCart(ctx context.Context, itemID string) ([]models.CartItem, error) {
	if itemID == "" {
		return nil, &ValidationError{Message: "item id must not be empty"}
	}

	params := url.Values{}
	params.Set("id", itemID)

	body, err := c.apiPost(ctx, "cart/remove", params)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.CartFromLists(lists), nil
}

// ClearCart empties the server-side cart.
func (c *OekoboxClient) ClearCart(ctx context.Context) error {
	_, err := c.apiGet(ctx, "client/resetcart", nil)
	return err
}
