package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iskcon-mangaluru/seva-coupon-system/internal/logger"
	"github.com/iskcon-mangaluru/seva-coupon-system/internal/models"
)

// ErrAuthenticationFailed is returned when the remote login check rejects
// the credentials (as opposed to the call itself failing).
var ErrAuthenticationFailed = errors.New("authentication failed")

// Client talks to the spreadsheet-backed remote store. Every operation is a
// single POST to one endpoint, discriminated by the "func" field. Calls are
// never retried automatically; a re-invoke risks duplicate server-side
// effects for addCoupon.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// call POSTs the payload and returns the raw response body.
func (c *Client) call(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway error (%d): %s", resp.StatusCode, string(raw))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gateway response: %w", err)
	}
	return raw, nil
}

// LoginCheck verifies staff credentials against the remote store.
func (c *Client) LoginCheck(ctx context.Context, username, password string) error {
	payload := map[string]any{
		"func":     "loginCheck",
		"userName": username,
		"passWord": password,
	}

	raw, err := c.call(ctx, payload)
	if err != nil {
		return err
	}

	var resp struct {
		Authentication int `json:"authentication"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	if resp.Authentication != http.StatusOK {
		return ErrAuthenticationFailed
	}
	return nil
}

// GetCoupons fetches the full remote collection. The backend sometimes
// double-JSON-encodes the payload, or stringifies just the couponData
// field; both shapes are tolerated.
func (c *Client) GetCoupons(ctx context.Context) ([]models.Coupon, error) {
	raw, err := c.call(ctx, map[string]any{"func": "getCoupons"})
	if err != nil {
		return nil, err
	}
	return decodeCouponsResponse(raw)
}

func decodeCouponsResponse(raw []byte) ([]models.Coupon, error) {
	body := bytes.TrimSpace(raw)

	// Whole payload arrived as a JSON string: unwrap and parse again.
	if len(body) > 0 && body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return nil, fmt.Errorf("failed to unwrap stringified response: %w", err)
		}
		body = []byte(inner)
	}

	var envelope struct {
		CouponData json.RawMessage `json:"couponData"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode coupons response: %w", err)
	}
	if len(envelope.CouponData) == 0 {
		return nil, nil
	}

	data := bytes.TrimSpace(envelope.CouponData)

	// couponData itself stringified: unwrap once more.
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("failed to unwrap stringified couponData: %w", err)
		}
		data = []byte(inner)
	}

	var coupons []models.Coupon
	if err := json.Unmarshal(data, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode couponData: %w", err)
	}
	return coupons, nil
}

// AddCoupon appends one coupon to the remote store.
func (c *Client) AddCoupon(ctx context.Context, coupon models.Coupon) error {
	payload := map[string]any{
		"func":   "addCoupon",
		"coupon": coupon,
		"name":   coupon.Name,
		"seva":   coupon.Seva,
	}
	if _, err := c.call(ctx, payload); err != nil {
		return err
	}
	return nil
}

// DelCoupon removes one coupon from the remote store.
func (c *Client) DelCoupon(ctx context.Context, code, name string) error {
	payload := map[string]any{
		"func":   "delCoupon",
		"coupon": code,
		"name":   name,
	}
	if _, err := c.call(ctx, payload); err != nil {
		return err
	}
	return nil
}

// ToggleIsActive marks the coupon redeemed on the remote store.
func (c *Client) ToggleIsActive(ctx context.Context, code string) error {
	payload := map[string]any{
		"func":   "toggleIsActive",
		"coupon": code,
	}
	if _, err := c.call(ctx, payload); err != nil {
		return err
	}
	return nil
}
