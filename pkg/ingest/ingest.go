// Package ingest turns an analyzed document into stored vocabulary: tokens
// are stemmed concurrently, aggregated into word and phrase frequencies and
// written to SQLite in batched transactions.
package ingest

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"time"

	"github.com/prasetio/kosakata/pkg/analyzer"
	"github.com/prasetio/kosakata/pkg/db"
)

const (
	defaultWorkers   = 4
	defaultBatchSize = 50
	defaultChunkSize = 256
)

// Ingester analyzes a document and persists its vocabulary.
type Ingester struct {
	DB       *sql.DB
	Analyzer *analyzer.Analyzer
	Log      *slog.Logger

	Workers   int
	BatchSize int
	// ChunkSize is the number of tokens stemmed per worker job.
	ChunkSize int

	MinPhraseLen int
	MaxPhraseLen int

	// Category tags every stored item from this document.
	Category string

	// OnProgress is called after each committed chunk with the number of
	// processed tokens and the total.
	OnProgress func(done, total int)
}

// NewIngester creates an ingester with production defaults.
func NewIngester(conn *sql.DB, a *analyzer.Analyzer) *Ingester {
	return &Ingester{
		DB:           conn,
		Analyzer:     a,
		Workers:      defaultWorkers,
		BatchSize:    defaultBatchSize,
		ChunkSize:    defaultChunkSize,
		MinPhraseLen: analyzer.DefaultMinPhraseLen,
		MaxPhraseLen: analyzer.DefaultMaxPhraseLen,
		Category:     "general",
	}
}

// Result summarizes one ingested document.
type Result struct {
	TotalTokens   int
	UniqueWords   int
	UniqueStems   int
	WordsStored   int
	PhrasesStored int
}

// stemmedChunk is the output of one worker job.
type stemmedChunk struct {
	index int
	stems []string // parallel to the chunk's tokens
}

// IngestDocument tokenizes, stems and persists one document. Stemming runs
// on the worker pool; aggregation and the final top-N ordering stay
// deterministic because chunks are merged in index order.
func (ig *Ingester) IngestDocument(ctx context.Context, text string) (*Result, error) {
	tokens := analyzer.Tokenize(analyzer.Normalize(text))
	if len(tokens) == 0 {
		return &Result{}, nil
	}

	stems, err := ig.stemAll(ctx, tokens)
	if err != nil {
		return nil, err
	}

	wordFreq := make(map[string]int, len(tokens))
	wordStem := make(map[string]string, len(tokens))
	stemFreq := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		if wordFreq[tok] == 0 {
			order = append(order, tok)
		}
		wordFreq[tok]++
		wordStem[tok] = stems[i]
		stemFreq[stems[i]]++
	}

	phrases := ig.Analyzer.ExtractPhrases(text, ig.MinPhraseLen, ig.MaxPhraseLen)

	if err := ig.persist(ctx, order, wordFreq, wordStem, phrases); err != nil {
		return nil, err
	}

	if ig.Log != nil {
		ig.Log.Info("document ingested",
			"tokens", len(tokens), "unique_words", len(wordFreq), "phrases", len(phrases))
	}
	return &Result{
		TotalTokens:   len(tokens),
		UniqueWords:   len(wordFreq),
		UniqueStems:   len(stemFreq),
		WordsStored:   len(wordFreq),
		PhrasesStored: len(phrases),
	}, nil
}

// stemAll stems the token stream in fixed-size chunks on the worker pool
// and reassembles the results in chunk order.
func (ig *Ingester) stemAll(ctx context.Context, tokens []string) ([]string, error) {
	chunkSize := ig.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	workers := ig.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	chunks := (len(tokens) + chunkSize - 1) / chunkSize
	results := make(chan stemmedChunk, chunks)

	pool := NewWorkerPool(workers, workers*2)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pool.Start(ctx)

	for i := 0; i < chunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		idx, chunk := i, tokens[start:end]
		job := func(ctx context.Context) error {
			stems := make([]string, len(chunk))
			for j, tok := range chunk {
				stems[j] = ig.Analyzer.Stem(tok)
			}
			select {
			case results <- stemmedChunk{index: idx, stems: stems}:
			case <-ctx.Done():
			}
			return nil
		}
		if err := pool.SubmitCtx(ctx, job); err != nil {
			pool.Close()
			return nil, err
		}
	}
	pool.Close()

	collected := make([]stemmedChunk, 0, chunks)
	for len(collected) < chunks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case c := <-results:
			collected = append(collected, c)
		}
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })

	stems := make([]string, 0, len(tokens))
	for _, c := range collected {
		stems = append(stems, c.stems...)
	}
	return stems, nil
}

// persist writes word and phrase upserts through the batch writer.
func (ig *Ingester) persist(ctx context.Context, order []string, wordFreq map[string]int, wordStem map[string]string, phrases []analyzer.PhraseCandidate) error {
	bw := NewBatchWriter(ig.DB, ig.BatchSize, 100*time.Millisecond)

	total := len(order) + len(phrases)
	done := 0
	report := func() {
		done++
		if ig.OnProgress != nil && (done%ig.BatchSize == 0 || done == total) {
			ig.OnProgress(done, total)
		}
	}

	for _, tok := range order {
		select {
		case <-ctx.Done():
			_ = bw.Close()
			return ctx.Err()
		default:
		}

		word := db.Word{
			Indonesian: tok,
			Stem:       wordStem[tok],
			Category:   ig.Category,
			Frequency:  wordFreq[tok],
			Difficulty: estimateDifficulty(tok),
		}
		word.Priority = basePriority(word.Frequency, word.Difficulty)
		w := word
		if err := bw.Submit(func(tx *sql.Tx) error {
			_, err := db.UpsertWord(tx, &w)
			return err
		}); err != nil {
			_ = bw.Close()
			return err
		}
		report()
	}

	for _, pc := range phrases {
		phrase := db.Phrase{
			Indonesian: pc.Phrase,
			Category:   ig.Category,
			Frequency:  pc.Count,
			Difficulty: estimateDifficulty(pc.Phrase),
		}
		phrase.Priority = basePriority(phrase.Frequency, phrase.Difficulty)
		p := phrase
		if err := bw.Submit(func(tx *sql.Tx) error {
			_, err := db.UpsertPhrase(tx, &p)
			return err
		}); err != nil {
			_ = bw.Close()
			return err
		}
		report()
	}

	return bw.Close()
}

// estimateDifficulty maps item length to a 1-5 difficulty level.
func estimateDifficulty(text string) int {
	switch n := len([]rune(text)); {
	case n <= 4:
		return 1
	case n <= 6:
		return 2
	case n <= 9:
		return 3
	case n <= 13:
		return 4
	default:
		return 5
	}
}

// basePriority is the stored baseline before learner adjustment: frequent
// and easy items float up.
func basePriority(frequency, difficulty int) float64 {
	return float64(frequency*100) / float64(difficulty+1)
}
