// Package oekobox is a client for the Ökobox Online REST API: shop discovery,
// session authentication, product catalog, cart mutation and order access for
// one shop per client instance.
//
// Every operation issues exactly one network call (no retries, no background
// work) and fails with exactly one of the typed errors in this package. The
// server is the sole arbiter of cart and order consistency; the client never
// recomputes totals.
package oekobox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"gooekobox/config"
	"gooekobox/metrics"
	"gooekobox/oekobox/models"
	"gooekobox/pkg/logger"
)

// OekoboxClient is the facade over the API of a single shop. One client owns
// one logical session; goroutines needing separate logins need separate
// clients.
type OekoboxClient struct {
	shopID   string
	username string
	password string
	baseURL  string

	httpClient *http.Client
	limiter    *rate.Limiter
	session    SessionAuth
	log        logger.Logger
	sessionLog logger.Logger
	tally      *metrics.RequestTally
}

// NewClient builds a client from the given configuration. The writer receives
// the client's log lines; pass nil to discard them.
func NewClient(cfg config.OekoboxConfig, writer io.Writer) (*OekoboxClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	log := logger.NewLogger(writer, "[OekoboxClient]")

	return &OekoboxClient{
		shopID:     cfg.ShopID,
		username:   cfg.Username,
		password:   cfg.Password,
		baseURL:    cfg.ResolvedBaseURL(),
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		limiter:    limiter,
		session:    newCookieSession(),
		log:        log,
		sessionLog: log.WithPrefix("[Session]"),
		tally:      &metrics.RequestTally{},
	}, nil
}

// BaseURL returns the resolved shop base URL.
func (c *OekoboxClient) BaseURL() string {
	return c.baseURL
}

// GetGroups fetches the product groups of the shop.
func (c *OekoboxClient) GetGroups(ctx context.Context) ([]models.Group, error) {
	body, err := c.apiGet(ctx, "groups2", nil)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.GroupsFromLists(lists), nil
}

// GetSubgroups fetches subgroups, optionally restricted to one parent group.
// Subgroups travel in the same groups2 response as the groups themselves.
func (c *OekoboxClient) GetSubgroups(ctx context.Context, groupID string) ([]models.SubGroup, error) {
	body, err := c.apiGet(ctx, "groups2", nil)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.SubGroupsFromLists(lists, groupID), nil
}

// GetItems fetches the items of a group (empty groupID means all groups),
// optionally filtered by subgroup.
func (c *OekoboxClient) GetItems(ctx context.Context, groupID, subgroupID string) ([]models.Item, error) {
	group := groupID
	if group == "" {
		group = "-1"
	}
	params := url.Values{}
	if subgroupID != "" {
		params.Set("subgroup", subgroupID)
	}

	body, err := c.apiGet(ctx, "items1/"+group, params)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.ItemsFromLists(lists), nil
}

// SearchItems fetches the items matching a keyword query.
func (c *OekoboxClient) SearchItems(ctx context.Context, query string) ([]models.Item, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Message: "search query must not be empty"}
	}
	params := url.Values{}
	params.Set("search", query)

	body, err := c.apiGet(ctx, "items1/-1", params)
	if err != nil {
		return nil, err
	}
	lists, err := decodeLists(body)
	if err != nil {
		return nil, err
	}
	return models.ItemsFromLists(lists), nil
}

// GetItem fetches one item. Not every shop version serves the single-item
// endpoint, so a missing endpoint falls back to filtering the full list.
func (c *OekoboxClient) GetItem(ctx context.Context, itemID string) (models.Item, error) {
	if itemID == "" {
		return models.Item{}, &ValidationError{Message: "item id must not be empty"}
	}

	body, err := c.apiGet(ctx, "item/"+itemID, nil)
	if err == nil {
		if lists, derr := decodeLists(body); derr == nil {
			for _, item := range models.ItemsFromLists(lists) {
				if item.ID == itemID {
					return item, nil
				}
			}
		}
	} else if !isNotFound(err) {
		return models.Item{}, err
	}

	items, err := c.GetItems(ctx, "", "")
	if err != nil {
		return models.Item{}, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return models.Item{}, &ValidationError{Message: "item not found: " + itemID}
}

// GetUserInfo fetches the account behind the current session.
func (c *OekoboxClient) GetUserInfo(ctx context.Context) (models.UserInfo, error) {
	body, err := c.apiGet(ctx, "user", nil)
	if err != nil {
		return models.UserInfo{}, err
	}

	var payload struct {
		ID       interface{} `json:"id"`
		Username string      `json:"username"`
		Email    string      `json:"email"`
		IsActive bool        `json:"is_active"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.UserInfo{}, &ValidationError{Message: "unexpected user response", Err: err}
	}
	return models.UserInfo{
		ID:       versionString(payload.ID),
		Username: payload.Username,
		Email:    payload.Email,
		IsActive: payload.IsActive,
	}, nil
}

// GetCustomerInfo assembles the customer profile from the configured
// credentials. The API carries no dedicated profile endpoint.
func (c *OekoboxClient) GetCustomerInfo() models.CustomerInfo {
	info := models.UserInfo{Username: c.username, IsActive: true}
	if strings.Contains(c.username, "@") {
		info.Email = c.username
	}
	return models.CustomerInfo{ID: c.username, User: info}
}

// GetDeliveryDates fetches the selectable delivery dates. Older shop
// deployments serve dates1 next to the api prefix instead of under it.
func (c *OekoboxClient) GetDeliveryDates(ctx context.Context) ([]models.DeliveryDate, error) {
	body, err := c.apiGet(ctx, "dates1", nil)
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
	return models.DeliveryDatesFromLists(lists), nil
}

// isNotFound reports whether err is an APIError for a 404.
func isNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
