// Package quizclient is a small HTTP client for the quiz API, used by the
// CLI player. It maps API statuses back onto the store's sentinel errors so
// "no quiz for this date" stays distinguishable from a transport failure.
package quizclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prepwise/dailyquiz/internal/quiz"
)

// ErrTransient covers network and decode failures: worth a retry, never a
// raw stack trace.
var ErrTransient = errors.New("quiz service unavailable")

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

func (c *Client) GetByDate(ctx context.Context, date string) (quiz.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/quiz/"+url.PathEscape(date), nil)
	if err != nil {
		return quiz.Document{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return quiz.Document{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return quiz.Document{}, quiz.ErrNotFound
	case http.StatusBadRequest:
		return quiz.Document{}, quiz.ErrInvalidDate
	default:
		return quiz.Document{}, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}

	var doc quiz.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return quiz.Document{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return doc, nil
}

func (c *Client) ListDates(ctx context.Context, category string) ([]string, error) {
	u := c.baseURL + "/api/quiz"
	if category != "" {
		u += "?category=" + url.QueryEscape(category)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrTransient, resp.StatusCode)
	}
	var dates []string
	if err := json.NewDecoder(resp.Body).Decode(&dates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return dates, nil
}

// Upsert pushes a document for a date via PUT /api/quiz/{date}.
func (c *Client) Upsert(ctx context.Context, date string, doc quiz.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		c.baseURL+"/api/quiz/"+url.PathEscape(date), strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upsert %s: status %d", date, resp.StatusCode)
	}
	return nil
}
