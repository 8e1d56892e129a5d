// Package gateway клиент удалённого сервиса хранения каталога и заказов.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var (
	// ErrFetchFailed транспортная ошибка или не-2xx при чтении
	ErrFetchFailed = errors.New("fetch failed")
	// ErrParseFailed тело ответа не является корректным JSON
	ErrParseFailed = errors.New("parse failed")
	// ErrRejectedByStore сервис доступен, но отверг запись (не-2xx)
	ErrRejectedByStore = errors.New("rejected by store")
)

// Config настройки клиента
type Config struct {
	// BaseURL адрес API, например http://host/api.php
	BaseURL    string
	HTTPClient *http.Client
}

// Client обращается к API через параметр action, как его публикует сервис
type Client struct {
	baseURL string
	http    *http.Client
}

func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{baseURL: cfg.BaseURL, http: cfg.HTTPClient}
}

func (c *Client) actionURL(action string, params url.Values) string {
	q := url.Values{}
	q.Set("action", action)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return c.baseURL + "?" + q.Encode()
}

// fetchJSON читает коллекцию; не-2xx — ErrFetchFailed, кривое тело — ErrParseFailed
func (c *Client) fetchJSON(ctx context.Context, action string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.actionURL(action, nil), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return nil
}

// write отправляет полезную нагрузку; не-2xx — ErrRejectedByStore
func (c *Client) write(ctx context.Context, method, action string, params url.Values, payload any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRejectedByStore, err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.actionURL(action, params), body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRejectedByStore, resp.StatusCode)
	}
	return nil
}
