package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/packfinderz-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/packfinderz-storefront/pkg/errors"
	"github.com/angelmondragon/packfinderz-storefront/pkg/logger"
	"github.com/angelmondragon/packfinderz-storefront/pkg/session"
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	errLoggerRequired  = errors.New("backend logger is required")
)

// Client is the JSON-over-HTTP implementation of the marketplace API surface
// the storefront consumes. It centralizes auth headers, per-call logging,
// and error mapping onto the local taxonomy.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     session.TokenSource
	logger     *logger.Logger
}

// NewClient validates the config and builds the API client. The token source
// may be nil for anonymous browsing.
func NewClient(cfg config.BackendConfig, tokens session.TokenSource, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	trimmed := strings.TrimSpace(cfg.BaseURL)
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parsing backend base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("backend base url %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		logger:     logg,
	}, nil
}

type addToCartRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	ShopID    uuid.UUID `json:"shop_id"`
	Quantity  int       `json:"quantity"`
}

type addToWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type cartCountResponse struct {
	Data struct {
		Count int `json:"count"`
	} `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// AddToCart adds a product line to the caller's active cart.
func (c *Client) AddToCart(ctx context.Context, productID, shopID uuid.UUID, quantity int) error {
	body := addToCartRequest{ProductID: productID, ShopID: shopID, Quantity: quantity}
	c.log(ctx, "request", "add_to_cart", map[string]any{
		"product_id": productID.String(),
		"shop_id":    shopID.String(),
		"quantity":   quantity,
	})
	if err := c.do(ctx, http.MethodPost, "/cart/items", body, nil); err != nil {
		c.log(ctx, "error", "add_to_cart", map[string]any{"error": err.Error()})
		return err
	}
	c.log(ctx, "response", "add_to_cart", nil)
	return nil
}

// CartItemCount returns the authoritative cart line count.
func (c *Client) CartItemCount(ctx context.Context) (int, error) {
	var resp cartCountResponse
	if err := c.do(ctx, http.MethodGet, "/cart/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Data.Count, nil
}

// AddToWishlist marks a product as liked.
func (c *Client) AddToWishlist(ctx context.Context, productID uuid.UUID) error {
	c.log(ctx, "request", "add_to_wishlist", map[string]any{"product_id": productID.String()})
	if err := c.do(ctx, http.MethodPost, "/wishlist/items", addToWishlistRequest{ProductID: productID}, nil); err != nil {
		c.log(ctx, "error", "add_to_wishlist", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}

// RemoveFromWishlist removes a liked product.
func (c *Client) RemoveFromWishlist(ctx context.Context, productID uuid.UUID) error {
	c.log(ctx, "request", "remove_from_wishlist", map[string]any{"product_id": productID.String()})
	if err := c.do(ctx, http.MethodDelete, "/wishlist/items/"+productID.String(), nil, nil); err != nil {
		c.log(ctx, "error", "remove_from_wishlist", map[string]any{"error": err.Error()})
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request body")
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.AccessToken()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling marketplace api")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.mapError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding response body")
		}
	}
	return nil
}

func (c *Client) mapError(resp *http.Response) error {
	code := pkgerrors.CodeForStatus(resp.StatusCode)
	message := fmt.Sprintf("marketplace api returned %d", resp.StatusCode)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && len(payload) > 0 {
		var envelope errorEnvelope
		if json.Unmarshal(payload, &envelope) == nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		}
	}
	return pkgerrors.New(code, message)
}

func (c *Client) log(ctx context.Context, phase, operation string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	entry := c.logger.WithFields(ctx, map[string]any{"phase": phase, "operation": operation})
	if len(fields) > 0 {
		entry = c.logger.WithFields(entry, fields)
	}
	c.logger.Debug(entry, "backend call")
}
