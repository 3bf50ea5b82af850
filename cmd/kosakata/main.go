package main

import (
	"bufio"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prasetio/kosakata/pkg/analyzer"
	"github.com/prasetio/kosakata/pkg/config"
	"github.com/prasetio/kosakata/pkg/db"
	"github.com/prasetio/kosakata/pkg/export"
	"github.com/prasetio/kosakata/pkg/fileproc"
	"github.com/prasetio/kosakata/pkg/ingest"
	"github.com/prasetio/kosakata/pkg/priority"
	"github.com/prasetio/kosakata/pkg/study"
	"github.com/prasetio/kosakata/pkg/translate"
)

type flags struct {
	file      string
	url       string
	category  string
	seed      bool
	translate bool
	list      string
	recommend bool
	stats     bool
	review    bool
	quiz      int
	exportDir string
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional, env vars always apply)")
	dbPath := flag.String("db", "", "override database path")

	var f flags
	flag.StringVar(&f.file, "file", "", "text or HTML file to analyze and ingest")
	flag.StringVar(&f.url, "url", "", "article URL to fetch, analyze and ingest")
	flag.StringVar(&f.category, "category", "general", "category tag for ingested items")
	flag.BoolVar(&f.seed, "seed", false, "load the built-in starter phrases")
	flag.BoolVar(&f.translate, "translate", false, "fill in missing Japanese translations")
	flag.StringVar(&f.list, "list", "", "list stored items by learning priority: words or phrases")
	flag.BoolVar(&f.recommend, "recommend", false, "print today's study recommendations")
	flag.BoolVar(&f.stats, "stats", false, "print learning statistics")
	flag.BoolVar(&f.review, "review", false, "run a flashcard review session of items that are due")
	flag.IntVar(&f.quiz, "quiz", 0, "run an interactive typing quiz with this many questions")
	flag.StringVar(&f.exportDir, "export", "", "write CSV exports and the learning report into this directory")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log, f); err != nil {
		log.Error("kosakata failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger, f flags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	if err := db.InitDB(conn); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	log.Debug("database ready", "path", cfg.DBPath)

	ran := false

	if f.seed {
		ran = true
		n, err := db.InsertSeedPhrases(conn)
		if err != nil {
			return fmt.Errorf("seed phrases: %w", err)
		}
		log.Info("starter phrases loaded", "inserted", n)
	}

	if f.file != "" || f.url != "" {
		ran = true
		if err := ingestSource(ctx, cfg, log, conn, f); err != nil {
			return err
		}
	}

	if f.translate {
		ran = true
		svc := translate.DefaultService(log)
		svc.Throttle = cfg.TranslateThrottle
		if ra, err := translate.NewReadingAnnotator(); err == nil {
			svc.Annotate = ra.Annotate
		} else {
			log.Warn("reading annotation disabled", "error", err)
		}
		n, err := svc.FillMissing(ctx, conn, cfg.TranslateLimit)
		if err != nil {
			return fmt.Errorf("translate: %w", err)
		}
		fmt.Printf("Translated %d words.\n", n)
	}

	if f.list != "" {
		ran = true
		if err := listItems(cfg, conn, f.list); err != nil {
			return err
		}
	}

	if f.recommend {
		ran = true
		if err := recommend(cfg, conn); err != nil {
			return err
		}
	}

	if f.stats {
		ran = true
		if err := printStats(cfg, conn); err != nil {
			return err
		}
	}

	if f.review {
		ran = true
		if err := runReview(cfg, conn); err != nil {
			return err
		}
	}

	if f.quiz > 0 {
		ran = true
		if err := runQuiz(ctx, cfg, conn, f.quiz); err != nil {
			return err
		}
	}

	if f.exportDir != "" {
		ran = true
		if err := exportAll(cfg, log, conn, f.exportDir); err != nil {
			return err
		}
	}

	if !ran {
		flag.Usage()
		return fmt.Errorf("nothing to do")
	}
	return nil
}

func ingestSource(ctx context.Context, cfg config.Config, log *slog.Logger, conn *sql.DB, f flags) error {
	var doc *fileproc.Document
	var err error
	if f.url != "" {
		log.Info("fetching article", "url", f.url)
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.HTTPTimeout)
		defer cancel()
		doc, err = fileproc.FetchArticle(fetchCtx, f.url)
	} else {
		log.Info("reading file", "path", f.file)
		doc, err = fileproc.ProcessFile(f.file)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Title: %s\n", doc.Title)

	ig := ingest.NewIngester(conn, analyzer.NewDefault())
	ig.Log = log
	ig.Workers = cfg.Workers
	ig.BatchSize = cfg.BatchSize
	ig.MinPhraseLen = cfg.MinPhraseLen
	ig.MaxPhraseLen = cfg.MaxPhraseLen
	ig.Category = f.category
	ig.OnProgress = func(done, total int) {
		fmt.Printf("\rProcessing %d/%d items...", done, total)
	}

	res, err := ig.IngestDocument(ctx, doc.Text)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	fmt.Printf("\nDone: %d tokens, %d unique words (%d stems), %d phrases stored.\n",
		res.TotalTokens, res.UniqueWords, res.UniqueStems, res.PhrasesStored)
	return nil
}

// loadEntries joins stored items with the learner's progress for ranking.
func loadEntries(cfg config.Config, conn *sql.DB, itemType priority.ItemType) ([]priority.Entry, error) {
	var entries []priority.Entry

	add := func(item priority.LexicalItem) error {
		lp, err := db.GetOrCreateProgress(conn, cfg.UserID, item.Type, item.ID)
		if err != nil {
			return err
		}
		entries = append(entries, priority.Entry{Item: item, Progress: lp.Snapshot()})
		return nil
	}

	if itemType == "" || itemType == priority.ItemWord {
		words, err := db.GetAllWords(conn, "priority")
		if err != nil {
			return nil, err
		}
		for _, w := range words {
			if err := add(w.Lexical()); err != nil {
				return nil, err
			}
		}
	}
	if itemType == "" || itemType == priority.ItemPhrase {
		phrases, err := db.GetAllPhrases(conn, "priority")
		if err != nil {
			return nil, err
		}
		for _, p := range phrases {
			if err := add(p.Lexical()); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}

func listItems(cfg config.Config, conn *sql.DB, what string) error {
	var itemType priority.ItemType
	switch what {
	case "words":
		itemType = priority.ItemWord
	case "phrases":
		itemType = priority.ItemPhrase
	default:
		return fmt.Errorf("unknown list target %q (use words or phrases)", what)
	}

	engine, err := priority.NewEngine(cfg.Weights())
	if err != nil {
		return err
	}
	entries, err := loadEntries(cfg, conn, itemType)
	if err != nil {
		return err
	}

	ranked := engine.PriorityList(entries, priority.ListOptions{Type: itemType, Limit: 50})
	fmt.Printf("%-4s %-20s %-20s %-12s %8s\n", "#", "Indonesian", "Japanese", "Status", "Priority")
	for i, r := range ranked {
		fmt.Printf("%-4d %-20s %-20s %-12s %8.3f\n",
			i+1, r.Item.Content, r.Item.Translation, r.Progress.Status, r.LearningPriority)
	}
	return nil
}

func recommend(cfg config.Config, conn *sql.DB) error {
	engine, err := priority.NewEngine(cfg.Weights())
	if err != nil {
		return err
	}
	entries, err := loadEntries(cfg, conn, "")
	if err != nil {
		return err
	}

	rec := engine.Recommendations(entries, cfg.DailyGoal)
	printSet := func(title string, items []priority.RankedItem) {
		fmt.Printf("%s (%d):\n", title, len(items))
		for _, r := range items {
			fmt.Printf("  - %s (%s)\n", r.Item.Content, r.Item.Translation)
		}
	}
	printSet("New items", rec.New)
	printSet("Review", rec.Review)
	printSet("Struggling", rec.Struggling)
	return nil
}

func printStats(cfg config.Config, conn *sql.DB) error {
	stats, err := db.LearningStats(conn, cfg.UserID)
	if err != nil {
		return err
	}
	fmt.Printf("Words:   %d total, %d mastered (%.1f%%)\n", stats.TotalWords, stats.WordsMastered, stats.WordsMasteryRate)
	fmt.Printf("Phrases: %d total, %d mastered (%.1f%%)\n", stats.TotalPhrases, stats.PhrasesMastered, stats.PhraseMasteryRate)

	entries, err := loadEntries(cfg, conn, "")
	if err != nil {
		return err
	}
	breakdown := priority.CategoryBreakdown(entries)
	for cat, cs := range breakdown {
		fmt.Printf("  %-12s %3d items, %3d mastered (%.1f%%)\n", cat, cs.Total, cs.Mastered, cs.MasteryRate)
	}
	return nil
}

// runReview walks through the due flashcards on stdin: show the Indonesian
// side, wait for enter, reveal the answer and grade with y/n.
func runReview(cfg config.Config, conn *sql.DB) error {
	m := study.NewManager(conn, cfg.UserID)
	s, err := m.NewReviewSession()
	if err != nil {
		return fmt.Errorf("build review session: %w", err)
	}
	if len(s.Cards) == 0 {
		fmt.Println("Nothing is due for review.")
		return nil
	}
	fmt.Printf("%d cards due for review.\n", len(s.Cards))

	in := bufio.NewScanner(os.Stdin)
	for {
		card, ok := s.Current()
		if !ok {
			break
		}
		fmt.Printf("\n%s\n(press enter to reveal) ", card.Front(s.Side))
		if !in.Scan() {
			break
		}
		fmt.Printf("→ %s\nCorrect? [y/n] ", card.Back(s.Side))
		if !in.Scan() {
			break
		}
		correct := strings.HasPrefix(strings.ToLower(strings.TrimSpace(in.Text())), "y")
		if err := m.MarkResult(s, card, correct); err != nil {
			return err
		}
		if !s.Next() {
			break
		}
	}

	sum, err := m.EndSession(s)
	if err != nil {
		return err
	}
	fmt.Printf("\nSession done: %d studied, %d correct (%.1f%%).\n", sum.CardsStudied, sum.Correct, sum.Accuracy)
	return nil
}

// runQuiz runs a typing test on stdin, Japanese prompt to Indonesian answer.
func runQuiz(ctx context.Context, cfg config.Config, conn *sql.DB, count int) error {
	m := study.NewManager(conn, cfg.UserID)
	ts, err := m.NewTypingTest(study.TestOptions{Count: count})
	if err != nil {
		return fmt.Errorf("build quiz: %w", err)
	}
	if len(ts.Questions) == 0 {
		fmt.Println("No translated vocabulary to quiz on yet.")
		return nil
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		if err := ctx.Err(); err != nil {
			break
		}
		q, ok := ts.Current()
		if !ok {
			break
		}
		fmt.Printf("\n%s\n> ", q.Prompt)
		start := time.Now()
		if !in.Scan() {
			break
		}
		ans, err := m.SubmitAnswer(ts, in.Text(), time.Since(start).Seconds())
		if err != nil {
			return err
		}
		if ans.Correct {
			fmt.Println("Correct!")
		} else {
			fmt.Printf("Wrong, the answer is %q.\n", q.CorrectAnswer)
		}
	}

	sum, err := m.EndTest(ts)
	if err != nil {
		return err
	}
	fmt.Printf("\nQuiz done: %d/%d correct (%.1f%%), avg %.1fs per answer.\n",
		sum.Correct, sum.Answered, sum.Accuracy, sum.AverageTime)
	return nil
}

func exportAll(cfg config.Config, log *slog.Logger, conn *sql.DB, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	e := export.New(conn)

	writeTo := func(name string, fn func(f *os.File) error) error {
		path := filepath.Join(dir, name)
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := fn(out); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		log.Info("export written", "path", path)
		return nil
	}

	if err := writeTo("words.csv", func(f *os.File) error { return e.WordsCSV(f) }); err != nil {
		return err
	}
	if err := writeTo("phrases.csv", func(f *os.File) error { return e.PhrasesCSV(f) }); err != nil {
		return err
	}
	if err := writeTo("progress.csv", func(f *os.File) error { return e.ProgressCSV(f, cfg.UserID) }); err != nil {
		return err
	}
	return writeTo("report.txt", func(f *os.File) error { return e.LearningReport(f, cfg.UserID) })
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		panic("unknown log level: " + levelStr)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
