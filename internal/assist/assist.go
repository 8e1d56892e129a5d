// Package assist генерация описания товара через внешний AI-сервис.
//
// Вызов сугубо вспомогательный: любая ошибка превращается в запасной
// текст, оформление заказа от него никогда не зависит.
package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"memopad/internal/obs"
)

// Fallback возвращается при любой ошибке генерации
const Fallback = "AI বর্ণনা জেনারেট করতে ব্যর্থ হয়েছে।"

// fallbackEmpty ответ пришёл, но текста в нём нет
const fallbackEmpty = "কোনো বর্ণনা পাওয়া যায়নি।"

// Config настройки клиента AI-сервиса
type Config struct {
	// URL endpoint, совместимый с chat completions
	URL        string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// Client клиент генерации описаний
type Client struct {
	cfg Config
}

func New(cfg Config) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.URL) == "" {
		cfg.URL = "https://api.openai.com/v1/chat/completions"
	}
	return &Client{cfg: cfg}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateDescription короткое описание товара на бенгальском по имени и
// цене. Ошибок не возвращает: при любом сбое отдаёт запасной текст.
func (c *Client) GenerateDescription(ctx context.Context, name string, price int64) string {
	prompt := fmt.Sprintf(`একটি প্রোডাক্টের জন্য সুন্দর এবং আকর্ষণীয় বর্ণনা লিখুন।
প্রোডাক্টের নাম: %s
দাম: %d টাকা।
আউটপুটটি অবশ্যই বাংলা ভাষায় হতে হবে এবং ছোট (২-৩ বাক্য) হবে।`, name, price)

	body, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		obs.Logger.Warn("assist request marshal failed", "error", err)
		return Fallback
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		obs.Logger.Warn("assist request build failed", "error", err)
		return Fallback
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		obs.Logger.Warn("assist call failed", "error", err)
		return Fallback
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		obs.Logger.Warn("assist call rejected", "status", resp.StatusCode)
		return Fallback
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		obs.Logger.Warn("assist response read failed", "error", err)
		return Fallback
	}
	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		obs.Logger.Warn("assist response parse failed", "error", err)
		return Fallback
	}
	if len(parsed.Choices) == 0 {
		return fallbackEmpty
	}
	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return fallbackEmpty
	}
	return text
}
