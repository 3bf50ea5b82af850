package translate

// commonWords is the built-in Indonesian→Japanese dictionary covering the
// high-frequency vocabulary of daily and factory-floor conversation. Web
// providers only see words this map cannot answer.
func commonWords() map[string]string {
	return map[string]string{
		// Core verbs
		"makan":   "食べる",
		"minum":   "飲む",
		"tidur":   "寝る",
		"kerja":   "働く",
		"jalan":   "歩く",
		"baca":    "読む",
		"tulis":   "書く",
		"lihat":   "見る",
		"dengar":  "聞く",
		"bicara":  "話す",
		"datang":  "来る",
		"pergi":   "行く",
		"pulang":  "帰る",
		"beli":    "買う",
		"jual":    "売る",
		"buat":    "作る",
		"ambil":   "取る",
		"kasih":   "与える",
		"bantu":   "手伝う",
		"mulai":   "始める",
		"selesai": "終わる",
		"tunggu":  "待つ",
		"cari":    "探す",
		"pakai":   "使う",
		"cek":     "チェックする",
		"lapor":   "報告する",

		// Pronouns and function words
		"saya":   "私",
		"kamu":   "あなた",
		"dia":    "彼・彼女",
		"kami":   "私たち",
		"kita":   "私たち",
		"mereka": "彼ら",
		"ini":    "これ",
		"itu":    "それ",
		"apa":    "何",
		"siapa":  "誰",
		"mana":   "どこ",
		"kapan":  "いつ",
		"kenapa": "なぜ",
		"berapa": "いくつ",
		"tidak":  "いいえ・ない",
		"bukan":  "～ではない",
		"sudah":  "もう・済み",
		"belum":  "まだ",
		"bisa":   "できる",
		"harus":  "～しなければならない",
		"boleh":  "～してもよい",
		"mau":    "～したい",
		"akan":   "～するつもり",
		"sedang": "～している",

		// Time and greetings
		"selamat":  "おめでとう・ご無事で",
		"pagi":     "朝",
		"siang":    "昼",
		"sore":     "夕方",
		"malam":    "夜",
		"hari":     "日",
		"minggu":   "週・日曜日",
		"bulan":    "月",
		"tahun":    "年",
		"sekarang": "今",
		"besok":    "明日",
		"kemarin":  "昨日",
		"terima":   "受け取る",

		// Food and daily life
		"nasi":   "ご飯",
		"air":    "水",
		"kopi":   "コーヒー",
		"teh":    "お茶",
		"susu":   "牛乳",
		"roti":   "パン",
		"rumah":  "家",
		"uang":   "お金",
		"orang":  "人",
		"nama":   "名前",
		"baik":   "良い",
		"buruk":  "悪い",
		"besar":  "大きい",
		"kecil":  "小さい",
		"baru":   "新しい",
		"lama":   "古い・長い",
		"cepat":  "速い",
		"lambat": "遅い",
		"panas":  "暑い・熱い",
		"dingin": "寒い・冷たい",

		// Workplace
		"pabrik":      "工場",
		"mesin":       "機械",
		"produksi":    "生産",
		"kualitas":    "品質",
		"keselamatan": "安全",
		"bahaya":      "危険",
		"rapat":       "会議",
		"laporan":     "報告書",
		"jadwal":      "スケジュール",
		"target":      "目標",
		"barang":      "品物",
		"bahan":       "材料",
		"alat":        "道具",
		"perbaikan":   "修理",
		"pemeriksaan": "検査",
		"masalah":     "問題",
		"karyawan":    "従業員",
		"atasan":      "上司",
		"gaji":        "給料",
		"lembur":      "残業",
		"istirahat":   "休憩",
		"libur":       "休み",
	}
}
