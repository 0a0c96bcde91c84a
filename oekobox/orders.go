package oekobox

import (
	"context"

	"gooekobox/oekobox/models"
)

// GetOrders fetches the order history. The dates1 feed doubles as the order
// list; rows without a real order id are dropped during conversion.
func (c *OekoboxClient) GetOrders(ctx context.Context) ([]models.Order, error) {
	body, err := c.baseGet(ctx, "dates1", nil)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.OrdersFromShopDates(lists, c.username), nil
}

// GetOrder fetches one order with its positions.
func (c *OekoboxClient) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	if orderID == "" {
		return models.Order{}, &ValidationError{Message: "order id must not be empty"}
	}

	body, err := c.apiGet(ctx, "order2/"+orderID, nil)
	if err != nil {
		if isNotFound(err) {
			return models.Order{}, &ValidationError{Message: "order not found: " + orderID, Err: err}
		}
		return models.Order{}, err
	}

	lists, err := decodeLists(body)
	if err != nil {
		return models.Order{}, err
	}
	order, ok := models.OrderFromLists(lists, c.username)
	if !ok {
		return models.Order{}, &ValidationError{Message: "order not found in response: " + orderID}
	}
	return order, nil
}

// CreateOrder converts the current cart into an order. The order reflects the
// cart snapshot at call time; the server owns the total and availability
// checks, the client never recomputes them.
func (c *OekoboxClient) CreateOrder(ctx context.Context) (models.Order, error) {
	body, err := c.apiPost(ctx, "cart/order", nil)
	if err != nil {
		return models.Order{}, err
	}

	lists, err := decodeLists(body)
	if err != nil {
		return models.Order{}, err
	}
	order, ok := models.OrderFromLists(lists, c.username)
	if !ok {
		return models.Order{}, &ValidationError{Message: "order missing from response"}
	}
	return order, nil
}
