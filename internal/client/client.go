// Package client is the Go counterpart of the web front end's data layer:
// typed calls against the REST API, a query cache with explicit invalidation
// rules, and the capture-and-enrich flow built on top of both.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/HugoJF/boxbox/internal/dto"
)

type (
	Box       = dto.BoxGetDTO
	BoxDetail = dto.BoxDetailDTO
	Item      = dto.ItemGetDTO
	ItemPage  = dto.ItemPageDTO
	Analysis  = dto.AnalysisDTO
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("boxbox api: %d %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ItemsFilter narrows item listings. Empty fields are not sent.
type ItemsFilter struct {
	BoxID  string
	Search string
}

func (f ItemsFilter) values() url.Values {
	values := url.Values{}
	if f.BoxID != "" {
		values.Set("boxId", f.BoxID)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	return values
}

func (c *Client) ListBoxes(ctx context.Context, search string) ([]Box, error) {
	values := url.Values{}
	if search != "" {
		values.Set("search", search)
	}
	var boxes []Box
	err := c.do(ctx, http.MethodGet, "/api/boxes", values, nil, &boxes)
	return boxes, err
}

func (c *Client) CreateBox(ctx context.Context, req dto.BoxCreateDTO) (*Box, error) {
	var box Box
	if err := c.do(ctx, http.MethodPost, "/api/boxes", nil, req, &box); err != nil {
		return nil, err
	}
	return &box, nil
}

func (c *Client) GetBox(ctx context.Context, id string) (*BoxDetail, error) {
	var box BoxDetail
	if err := c.do(ctx, http.MethodGet, "/api/boxes/"+url.PathEscape(id), nil, nil, &box); err != nil {
		return nil, err
	}
	return &box, nil
}

func (c *Client) UpdateBox(ctx context.Context, id string, req dto.BoxUpdateDTO) (*Box, error) {
	var box Box
	if err := c.do(ctx, http.MethodPatch, "/api/boxes/"+url.PathEscape(id), nil, req, &box); err != nil {
		return nil, err
	}
	return &box, nil
}

func (c *Client) DeleteBox(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/boxes/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ListItems(ctx context.Context, filter ItemsFilter) ([]Item, error) {
	var items []Item
	err := c.do(ctx, http.MethodGet, "/api/items", filter.values(), nil, &items)
	return items, err
}

// ListItemsPage fetches one page. Pass an empty cursor for the first page and
// the returned NextCursor for the following ones.
func (c *Client) ListItemsPage(ctx context.Context, filter ItemsFilter, limit int, cursor string) (*ItemPage, error) {
	values := filter.values()
	values.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		values.Set("cursor", cursor)
	}
	var page ItemPage
	if err := c.do(ctx, http.MethodGet, "/api/items", values, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateItem(ctx context.Context, req dto.ItemCreateDTO) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPost, "/api/items", nil, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) GetItem(ctx context.Context, id string) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, "/api/items/"+url.PathEscape(id), nil, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id string, req dto.ItemUpdateDTO) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodPatch, "/api/items/"+url.PathEscape(id), nil, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) AnalyzeItem(ctx context.Context, image, profile string) (*Analysis, error) {
	var analysis Analysis
	req := dto.AnalyzeRequestDTO{Image: image, Profile: profile}
	if err := c.do(ctx, http.MethodPost, "/api/analyze-item", nil, req, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (c *Client) CompareProfiles(ctx context.Context, image string, profiles []string) ([]dto.CompareResultDTO, error) {
	var results []dto.CompareResultDTO
	req := dto.CompareRequestDTO{Image: image, Profiles: profiles}
	err := c.do(ctx, http.MethodPost, "/api/analyze-item/compare", nil, req, &results)
	return results, err
}

func (c *Client) BoxQRCode(ctx context.Context, boxID string) (*dto.QRCodeDTO, error) {
	var code dto.QRCodeDTO
	if err := c.do(ctx, http.MethodGet, "/api/qr/"+url.PathEscape(boxID), nil, nil, &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (c *Client) Reconcile(ctx context.Context) (int, error) {
	var result dto.ReconcileDTO
	err := c.do(ctx, http.MethodPost, "/api/admin/reconcile", nil, nil, &result)
	return result.Corrected, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody dto.ErrorDTO
		if json.Unmarshal(raw, &errBody) != nil || errBody.Error == "" {
			errBody.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
