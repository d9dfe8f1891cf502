// Package recommend fetches diet recommendation plans from the remote
// service, caching them locally with a TTL and degrading to stale data when
// the service is unreachable.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// Item is one recommended dish in a daily plan.
type Item struct {
	Day      int     `json:"day"`
	Meal     string  `json:"meal"`
	Dish     string  `json:"dish"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// Plan groups a payload's items by plan day, ascending.
type Plan struct {
	Day   int
	Items []Item
}

// envelope is the service's response wrapper. Code is the string "200" on
// success; anything else is a failure with Msg as the reason.
type envelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// request is what the recommendation endpoint expects.
type request struct {
	UserID      string  `json:"userId"`
	CalorieGoal float64 `json:"calorieGoal,omitempty"`
}

// Client calls the recommendation endpoint. Each call carries its own
// timeout; the retry policy lives in the Fetcher.
type Client struct {
	BaseURL string
	Timeout time.Duration

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Fetch performs one attempt against the service. A non-success envelope, a
// transport failure, a timeout, and a malformed payload all fail alike; the
// caller retries on any error.
func (c *Client) Fetch(ctx context.Context, userID string, calorieGoal float64) ([]Item, error) {
	if c.BaseURL == "" {
		return nil, errors.New("recommend: no service url configured")
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(request{UserID: userID, CalorieGoal: calorieGoal})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/diet/recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("recommend: decode response: %w", err)
	}
	if env.Code != "200" {
		return nil, fmt.Errorf("recommend: service error %s: %s", env.Code, env.Msg)
	}

	var items []Item
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, fmt.Errorf("recommend: decode payload: %w", err)
	}
	return validateItems(items)
}

// validateItems rejects payloads missing required fields. A malformed
// payload is a failure, not a partial success.
func validateItems(items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, errors.New("recommend: empty payload")
	}
	for i, item := range items {
		if item.Dish == "" {
			return nil, fmt.Errorf("recommend: item %d missing dish", i)
		}
		if item.Calories < 0 {
			return nil, fmt.Errorf("recommend: item %d negative calories", i)
		}
	}
	return items, nil
}

// GroupByDay arranges items into per-day plans, ascending by day, preserving
// item order within a day.
func GroupByDay(items []Item) []Plan {
	order := make([]int, 0)
	grouped := make(map[int][]Item)
	for _, item := range items {
		if _, seen := grouped[item.Day]; !seen {
			order = append(order, item.Day)
		}
		grouped[item.Day] = append(grouped[item.Day], item)
	}
	sort.Ints(order)
	plans := make([]Plan, 0, len(order))
	for _, day := range order {
		plans = append(plans, Plan{Day: day, Items: grouped[day]})
	}
	return plans
}
