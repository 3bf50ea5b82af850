package translate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prasetio/kosakata/pkg/db"
)

// FailureTag is appended to the source word when every provider fails, so
// the stored gloss says so instead of staying silently empty.
const FailureTag = "（翻訳取得失敗）"

// Service resolves translations through a provider chain and writes them
// back to storage.
type Service struct {
	providers []Provider
	log       *slog.Logger

	// Delay between web lookups to stay friendly to free APIs.
	Throttle time.Duration

	// Annotate, when set, post-processes every stored translation, e.g. to
	// append a katakana reading.
	Annotate func(string) string
}

// NewService creates a service trying the given providers in order.
func NewService(log *slog.Logger, providers ...Provider) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		providers: providers,
		log:       log,
		Throttle:  200 * time.Millisecond,
	}
}

// DefaultService builds the standard chain: local dictionary first, then
// MyMemory as the web fallback.
func DefaultService(log *slog.Logger) *Service {
	local := NewLocalDictionary(commonWords())
	return NewService(log, local, NewMyMemory())
}

// Translate tries each provider in order and returns the first answer.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	var lastErr error
	for _, p := range s.providers {
		ja, err := p.Translate(ctx, text)
		if err == nil {
			return ja, nil
		}
		if !errors.Is(err, ErrNoTranslation) {
			s.log.Warn("translation provider failed", "provider", p.Name(), "error", err)
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrNoTranslation
	}
	return "", fmt.Errorf("translate %q: %w", text, lastErr)
}

// FillMissing translates up to limit stored words that have no Japanese
// gloss yet. Lookup failures are stamped with FailureTag instead of
// aborting the batch. Returns the number of words actually translated.
func (s *Service) FillMissing(ctx context.Context, conn *sql.DB, limit int) (int, error) {
	words, err := db.GetWordsWithoutTranslation(conn, limit)
	if err != nil {
		return 0, fmt.Errorf("load untranslated words: %w", err)
	}

	translated := 0
	for i, w := range words {
		if err := ctx.Err(); err != nil {
			return translated, err
		}
		if i > 0 && s.Throttle > 0 {
			select {
			case <-time.After(s.Throttle):
			case <-ctx.Done():
				return translated, ctx.Err()
			}
		}

		ja, err := s.Translate(ctx, w.Indonesian)
		if err != nil {
			s.log.Warn("translation failed", "word", w.Indonesian, "error", err)
			ja = w.Indonesian + FailureTag
		} else {
			translated++
			if s.Annotate != nil {
				ja = s.Annotate(ja)
			}
		}
		if err := db.UpdateWordTranslation(conn, w.ID, ja); err != nil {
			return translated, fmt.Errorf("store translation for %q: %w", w.Indonesian, err)
		}
	}
	s.log.Info("translation batch finished", "requested", len(words), "translated", translated)
	return translated, nil
}
