package translate

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ReadingAnnotator derives katakana readings for Japanese glosses, so
// learners who cannot read kanji yet still get the pronunciation.
type ReadingAnnotator struct {
	t *tokenizer.Tokenizer
}

// NewReadingAnnotator creates an annotator backed by the IPA dictionary.
func NewReadingAnnotator() (*ReadingAnnotator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &ReadingAnnotator{t: t}, nil
}

// Reading returns the katakana reading of the given Japanese text. Tokens
// the dictionary cannot resolve keep their surface form.
func (ra *ReadingAnnotator) Reading(text string) string {
	var b strings.Builder
	for _, token := range ra.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}
		// IPA feature layout: index 7 holds the reading when known.
		features := token.Features()
		if len(features) > 7 && features[7] != "*" {
			b.WriteString(features[7])
		} else {
			b.WriteString(token.Surface)
		}
	}
	return b.String()
}

// Annotate appends the reading in brackets when it differs from the text
// itself, e.g. 工場 → 工場（コウジョウ）.
func (ra *ReadingAnnotator) Annotate(text string) string {
	if text == "" || strings.HasSuffix(text, FailureTag) {
		return text
	}
	reading := ra.Reading(text)
	if reading == "" || reading == text {
		return text
	}
	return text + "（" + reading + "）"
}
