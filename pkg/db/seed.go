package db

// SeedPhrase is one starter phrase with its Japanese gloss.
type SeedPhrase struct {
	Indonesian string
	Japanese   string
	Category   string
}

// SeedPhrases returns the built-in starter phrases, grouped by workplace
// category.
func SeedPhrases() []SeedPhrase {
	return seedPhrases
}

// InsertSeedPhrases loads the starter phrases, skipping ones already
// present. Returns the number of newly inserted rows.
func InsertSeedPhrases(db DBExecutor) (int, error) {
	var inserted int
	for _, sp := range seedPhrases {
		res, err := db.Exec(`INSERT OR IGNORE INTO phrases (indonesian, japanese, category, word_count, difficulty)
			VALUES (?, ?, ?, ?, 2)`,
			sp.Indonesian, sp.Japanese, sp.Category, wordCount(sp.Indonesian))
		if err != nil {
			return inserted, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	return inserted, nil
}

func wordCount(s string) int {
	n := 1
	for _, r := range s {
		if r == ' ' {
			n++
		}
	}
	return n
}

var seedPhrases = []SeedPhrase{
	// Meetings and general business
	{"Selamat pagi, mari kita mulai rapat", "おはようございます、会議を始めましょう", "business"},
	{"Apakah ada pertanyaan?", "質問はありますか？", "business"},
	{"Tolong jelaskan lebih detail", "もっと詳しく説明してください", "business"},
	{"Saya setuju dengan pendapat Anda", "あなたの意見に賛成です", "business"},
	{"Bagaimana pendapat Anda?", "あなたの意見はどうですか？", "business"},
	{"Terima kasih atas presentasinya", "プレゼンテーションありがとうございました", "business"},
	{"Mohon maaf, bisa diulangi?", "すみません、もう一度言っていただけますか？", "business"},
	{"Saya akan konfirmasi dulu", "確認させていただきます", "business"},
	{"Mohon ditunggu sebentar", "少々お待ちください", "business"},
	{"Baik, saya mengerti", "はい、分かりました", "business"},
	{"Kapan deadline-nya?", "締切はいつですか？", "business"},

	// Production floor and quality control
	{"Produksi hari ini berapa?", "今日の生産数はいくつですか？", "production"},
	{"Ada masalah di mesin", "機械に問題があります", "production"},
	{"Tolong cek kualitasnya", "品質をチェックしてください", "production"},
	{"Material sudah datang?", "材料は届きましたか？", "production"},
	{"Mesin sedang maintenance", "機械はメンテナンス中です", "production"},
	{"Stok barang kurang", "在庫が不足しています", "production"},
	{"Kualitas harus dijaga", "品質を維持しなければなりません", "quality"},
	{"Ada defect di produk ini", "この製品に欠陥があります", "quality"},
	{"Tolong inspeksi ulang", "再検査してください", "quality"},
	{"Standar kualitas terpenuhi", "品質基準を満たしています", "quality"},

	// Safety
	{"Pakai alat pelindung diri", "保護具を着用してください", "safety"},
	{"Hati-hati, lantai licin", "注意、床が滑りやすいです", "safety"},
	{"Jangan lupa helm safety", "安全ヘルメットを忘れないでください", "safety"},
	{"Area berbahaya, dilarang masuk", "危険エリア、立入禁止", "safety"},
	{"Matikan mesin sebelum perbaikan", "修理前に機械を止めてください", "safety"},
	{"Ikuti prosedur keselamatan", "安全手順に従ってください", "safety"},
	{"Laporkan jika ada bahaya", "危険があれば報告してください", "safety"},

	// Daily conversation
	{"Selamat pagi", "おはようございます", "daily"},
	{"Selamat siang", "こんにちは", "daily"},
	{"Selamat malam", "こんばんは", "daily"},
	{"Apa kabar?", "お元気ですか？", "daily"},
	{"Sampai jumpa", "さようなら", "daily"},
	{"Terima kasih", "ありがとうございます", "daily"},
	{"Sama-sama", "どういたしまして", "daily"},
	{"Tidak apa-apa", "大丈夫です", "daily"},
	{"Maaf, saya tidak mengerti", "すみません、分かりません", "daily"},
	{"Bisa tolong bantu?", "手伝ってもらえますか？", "daily"},
	{"Hati-hati di jalan", "道中お気をつけて", "daily"},

	// Technical
	{"Sistem error", "システムエラー", "technical"},
	{"Perlu restart komputer", "コンピュータの再起動が必要です", "technical"},
	{"Backup data penting", "重要なデータをバックアップ", "technical"},
	{"Koneksi internet lambat", "インターネット接続が遅い", "technical"},
	{"Perbaiki bug program", "プログラムのバグを修正", "technical"},
	{"Test fungsi sistem", "システム機能をテスト", "technical"},
}
