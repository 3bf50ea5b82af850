package main_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Laporan Produksi</title></head>
<body>
<article>
<h1>Laporan Produksi</h1>
<p>Produksi hari ini berjalan lancar dan semua mesin bekerja dengan baik.
Para pekerja menyelesaikan target harian sebelum waktu istirahat siang.
Tim inspeksi melakukan pemeriksaan rutin setiap pagi dan sore hari.</p>
<p>Manajer pabrik mengatakan bahwa kualitas produk bulan ini meningkat.
Semua karyawan mengikuti prosedur keselamatan dengan disiplin tinggi.</p>
</article>
</body>
</html>`

func TestCLI_OfflineIngest(t *testing.T) {
	tmp := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	dbPath := filepath.Join(tmp, "kosakata.db")
	bin := filepath.Join(tmp, "kosakata.bin")

	// Build with the full import path so the test works from any directory.
	build := exec.Command("go", "build", "-o", bin, "github.com/prasetio/kosakata/cmd/kosakata")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, bin, "-url", srv.URL, "-db", dbPath, "-seed")
	cmd.Dir = tmp
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		t.Fatalf("cli timed out, output:\n%s", out)
	}
	if err != nil {
		t.Fatalf("cli failed: %v\noutput:\n%s", err, out)
	}

	outStr := string(out)
	if !strings.Contains(outStr, "Laporan Produksi") || !strings.Contains(outStr, "Done:") {
		t.Fatalf("unexpected CLI output:\n%s", outStr)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer conn.Close()

	var words int
	if err := conn.QueryRow("SELECT COUNT(*) FROM words").Scan(&words); err != nil {
		t.Fatalf("db query failed: %v", err)
	}
	if words == 0 {
		t.Fatal("expected ingested words in DB, found 0")
	}

	var phrases int
	if err := conn.QueryRow("SELECT COUNT(*) FROM phrases").Scan(&phrases); err != nil {
		t.Fatalf("db query failed: %v", err)
	}
	if phrases == 0 {
		t.Fatal("expected seeded phrases in DB, found 0")
	}
}
