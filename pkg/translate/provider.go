// Package translate fills in Japanese glosses for stored Indonesian
// vocabulary. Providers are tried in order; web providers are best-effort
// and a local dictionary always answers first when it can.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Provider resolves one Indonesian text to a Japanese translation.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// ErrNoTranslation is returned when a provider has no answer for the text.
var ErrNoTranslation = errors.New("translate: no translation found")

// LocalDictionary answers from an in-memory Indonesian→Japanese map.
type LocalDictionary struct {
	entries map[string]string
}

// NewLocalDictionary builds a provider from the given entries. Keys are
// matched case-insensitively.
func NewLocalDictionary(entries map[string]string) *LocalDictionary {
	idx := make(map[string]string, len(entries))
	for k, v := range entries {
		idx[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &LocalDictionary{entries: idx}
}

func (d *LocalDictionary) Name() string { return "local" }

func (d *LocalDictionary) Translate(_ context.Context, text string) (string, error) {
	if ja, ok := d.entries[strings.ToLower(strings.TrimSpace(text))]; ok {
		return ja, nil
	}
	return "", ErrNoTranslation
}

// MyMemory queries the free MyMemory translation API.
type MyMemory struct {
	BaseURL string
	Client  *http.Client
}

// NewMyMemory creates a MyMemory provider against the public endpoint.
func NewMyMemory() *MyMemory {
	return &MyMemory{
		BaseURL: "https://api.mymemory.translated.net",
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *MyMemory) Name() string { return "mymemory" }

func (m *MyMemory) Translate(ctx context.Context, text string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", "id|ja")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.BaseURL+"/get?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query mymemory: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mymemory status %d", resp.StatusCode)
	}

	var payload struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus int `json:"responseStatus"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode mymemory response: %w", err)
	}
	if payload.ResponseStatus != http.StatusOK || payload.ResponseData.TranslatedText == "" {
		return "", ErrNoTranslation
	}
	return payload.ResponseData.TranslatedText, nil
}

// LibreTranslate queries a LibreTranslate instance.
type LibreTranslate struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewLibreTranslate creates a provider for the given instance URL.
func NewLibreTranslate(baseURL string) *LibreTranslate {
	return &LibreTranslate{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (l *LibreTranslate) Name() string { return "libretranslate" }

func (l *LibreTranslate) Translate(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"q":       text,
		"source":  "id",
		"target":  "ja",
		"format":  "text",
		"api_key": l.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+"/translate", strings.NewReader(string(body)))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query libretranslate: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("libretranslate status %d", resp.StatusCode)
	}

	var payload struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode libretranslate response: %w", err)
	}
	if payload.TranslatedText == "" {
		return "", ErrNoTranslation
	}
	return payload.TranslatedText, nil
}
