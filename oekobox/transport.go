package oekobox

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gooekobox/metrics"
	"gooekobox/oekobox/models"
)

// apiResult is the object-shaped envelope some endpoints answer with.
type apiResult struct {
	Action string `json:"action"`
	Result string `json:"result"`
}

// doRequest performs one API exchange: rate-limit wait, session attach,
// request, session capture, metrics, and mapping of every failure onto the
// error taxonomy. The endpoint argument is the logical name used for logging
// and metric labels.
func (c *OekoboxClient) doRequest(ctx context.Context, method, rawURL, endpoint string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &ConnectionError{Message: "rate limiter wait aborted", Err: err}
		}
	}

	if params == nil {
		params = url.Values{}
	}
	c.session.Attach(params)

	requestURL := rawURL
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
	if err != nil {
		return nil, &ConnectionError{Message: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	c.tally.IssuedCount.Add(1)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.tally.ErroredCount.Add(1)
		select {
		case <-ctx.Done():
			return nil, &ConnectionError{Message: "request cancelled", Err: ctx.Err()}
		default:
			return nil, &ConnectionError{Message: "request failed", Err: err}
		}
	}
	defer resp.Body.Close()

	c.session.Capture(resp)

	body, err := io.ReadAll(resp.Body)
	metrics.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		c.tally.ErroredCount.Add(1)
		return nil, &ConnectionError{Message: "failed to read response body", Err: err}
	}

	if err := statusError(resp.StatusCode, body); err != nil {
		c.tally.ErroredCount.Add(1)
		c.log.Log("%s %s -> HTTP %d", method, endpoint, resp.StatusCode)
		return nil, err
	}
	if err := bodyResultError(body, resp.StatusCode); err != nil {
		c.tally.ErroredCount.Add(1)
		c.log.Log("%s %s -> %v", method, endpoint, err)
		return nil, err
	}
	return body, nil
}

func (c *OekoboxClient) apiGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, c.apiBaseURL()+"/"+path, endpointLabel(path), params)
}

func (c *OekoboxClient) apiPost(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.doRequest(ctx, http.MethodPost, c.apiBaseURL()+"/"+path, endpointLabel(path), params)
}

// baseGet hits an endpoint living next to, not under, the api prefix. A few
// shop deployments only serve dates1 there.
func (c *OekoboxClient) baseGet(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, c.baseURL+"/"+path, endpointLabel(path), params)
}

func (c *OekoboxClient) apiBaseURL() string {
	return c.baseURL + "/api"
}

// endpointLabel replaces volatile path segments (group and order ids) so the
// metric label set stays bounded.
func endpointLabel(path string) string {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if _, err := strconv.Atoi(parts[i]); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

// statusError translates a non-2xx response into the error taxonomy.
func statusError(statusCode int, body []byte) error {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized:
		return &AuthenticationError{StatusCode: statusCode, Message: "authentication failed"}
	case statusCode == http.StatusForbidden:
		return &AuthenticationError{StatusCode: statusCode, Message: "access forbidden"}
	default:
		return &APIError{StatusCode: statusCode, Message: serverMessage(body)}
	}
}

// serverMessage extracts the error text from a JSON body, falling back to the
// raw response text.
func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}

// bodyResultError surfaces API-level result codes carried in 2xx bodies.
// Array-shaped and non-JSON bodies carry no result code and pass through.
func bodyResultError(body []byte, statusCode int) error {
	var envelope apiResult
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil
	}
	if envelope.Result == "" || envelope.Result == "ok" {
		return nil
	}
	return resultError(envelope.Result, statusCode)
}

// decodeLists parses a DataList body, flagging unknown shapes instead of
// coercing them.
func decodeLists(body []byte) ([]models.DataList, error) {
	lists, err := models.DecodeDataLists(body)
	if err != nil {
		return nil, &ValidationError{Message: "unexpected response shape", Err: err}
	}
	return lists, nil
}
