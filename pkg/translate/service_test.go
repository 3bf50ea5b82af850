package translate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/prasetio/kosakata/pkg/db"
)

func TestLocalDictionary(t *testing.T) {
	d := NewLocalDictionary(map[string]string{"Makan": "食べる"})

	ja, err := d.Translate(context.Background(), "  MAKAN ")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if ja != "食べる" {
		t.Fatalf("got %q", ja)
	}

	if _, err := d.Translate(context.Background(), "zzz"); !errors.Is(err, ErrNoTranslation) {
		t.Fatalf("err = %v, want ErrNoTranslation", err)
	}
}

func TestMyMemoryTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("langpair"); got != "id|ja" {
			t.Errorf("langpair = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"responseStatus": 200,
			"responseData":   map[string]string{"translatedText": "工場"},
		})
	}))
	defer srv.Close()

	m := NewMyMemory()
	m.BaseURL = srv.URL
	ja, err := m.Translate(context.Background(), "pabrik")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if ja != "工場" {
		t.Fatalf("got %q", ja)
	}
}

func TestMyMemoryNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"responseStatus": 403})
	}))
	defer srv.Close()

	m := NewMyMemory()
	m.BaseURL = srv.URL
	if _, err := m.Translate(context.Background(), "x"); !errors.Is(err, ErrNoTranslation) {
		t.Fatalf("err = %v, want ErrNoTranslation", err)
	}
}

func TestLibreTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["source"] != "id" || req["target"] != "ja" {
			t.Errorf("bad language pair: %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "機械"})
	}))
	defer srv.Close()

	l := NewLibreTranslate(srv.URL)
	ja, err := l.Translate(context.Background(), "mesin")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if ja != "機械" {
		t.Fatalf("got %q", ja)
	}
}

func TestServiceFallsThroughProviders(t *testing.T) {
	empty := NewLocalDictionary(nil)
	second := NewLocalDictionary(map[string]string{"kopi": "コーヒー"})
	s := NewService(nil, empty, second)

	ja, err := s.Translate(context.Background(), "kopi")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if ja != "コーヒー" {
		t.Fatalf("got %q", ja)
	}

	if _, err := s.Translate(context.Background(), "zzz"); err == nil {
		t.Fatal("expected error when no provider answers")
	}
}

func setupTranslateDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	conn.SetMaxOpenConns(1)
	if err := db.InitDB(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestFillMissing(t *testing.T) {
	conn := setupTranslateDB(t)
	for _, text := range []string{"makan", "zzzzz"} {
		w := db.Word{Indonesian: text, Stem: text, Frequency: 1, Difficulty: 1}
		if _, err := db.UpsertWord(conn, &w); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	s := NewService(nil, NewLocalDictionary(map[string]string{"makan": "食べる"}))
	s.Throttle = 0

	n, err := s.FillMissing(context.Background(), conn, 10)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if n != 1 {
		t.Fatalf("translated %d words, want 1", n)
	}

	words, err := db.GetAllWords(conn, "")
	if err != nil {
		t.Fatalf("get words: %v", err)
	}
	byText := make(map[string]string, len(words))
	for _, w := range words {
		byText[w.Indonesian] = w.Japanese
	}
	if byText["makan"] != "食べる" {
		t.Fatalf("makan = %q", byText["makan"])
	}
	if byText["zzzzz"] != "zzzzz"+FailureTag {
		t.Fatalf("zzzzz = %q, want failure tag", byText["zzzzz"])
	}
}
