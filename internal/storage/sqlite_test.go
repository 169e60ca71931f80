package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, s *Store, gameID string, scores ...int) {
	t.Helper()
	for _, sc := range scores {
		if _, err := s.SaveScore(gameID, sc); err != nil {
			t.Fatalf("SaveScore(%q, %d) failed: %v", gameID, sc, err)
		}
	}
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcade/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcade", "scores.db")); err != nil {
		t.Errorf("expected database under HOME: %v", err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, "brawler", 100, 50, 200)
	mustSave(t, store, "gems", 500)

	tests := []struct {
		name  string
		game  string
		limit int
		want  []int
	}{
		{"sorted descending", "brawler", 10, []int{200, 100, 50}},
		{"limited", "brawler", 2, []int{200, 100}},
		{"default limit", "brawler", 0, []int{200, 100, 50}},
		{"other game", "gems", 10, []int{500}},
		{"unknown game", "nope", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.TopScores(tt.game, tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scores, want %d", len(got), len(tt.want))
			}
			for i, e := range got {
				if e.Score != tt.want[i] {
					t.Errorf("score[%d] = %d, want %d", i, e.Score, tt.want[i])
				}
				if e.GameID != tt.game {
					t.Errorf("score[%d] game = %q, want %q", i, e.GameID, tt.game)
				}
				if e.CreatedAt.IsZero() {
					t.Errorf("score[%d] has no timestamp", i)
				}
			}
		})
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)
	for i := 0; i < 20; i++ {
		mustSave(t, store, "gems", i*10)
	}

	scores, err := store.AllScores("gems")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected best first, got %d", scores[0].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("brawler")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, "brawler", 100, 300, 200)

	high, err = store.HighScore("brawler")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("gems")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Games != 0 || empty.Best != 0 || empty.Average != 0 || !empty.Last.IsZero() {
		t.Errorf("empty stats = %+v, want zero", empty)
	}

	mustSave(t, store, "gems", 10, 20, 60)
	mustSave(t, store, "brawler", 1000)

	st, err := store.Stats("gems")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Games != 3 {
		t.Errorf("Games = %d, want 3", st.Games)
	}
	if st.Best != 60 {
		t.Errorf("Best = %d, want 60", st.Best)
	}
	if st.Average != 30 {
		t.Errorf("Average = %v, want 30", st.Average)
	}
	if st.Last.IsZero() {
		t.Error("Last should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, "brawler", 100, 200)
	mustSave(t, store, "gems", 300)

	if err := store.ClearScores("brawler"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if got, _ := store.TopScores("brawler", 10); len(got) != 0 {
		t.Errorf("Expected 0 brawler scores after clear, got %d", len(got))
	}
	if got, _ := store.TopScores("gems", 10); len(got) != 1 {
		t.Errorf("gems scores should not be affected by clearing brawler")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite text", "2024-05-06 07:08:09", want},
		{"rfc3339 text", "2024-05-06T07:08:09Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"null", nil, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseTime(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTime(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SavePlayerScore("gems", "ada", 70); err != nil {
		t.Fatal(err)
	}
	mustSave(t, store, "gems", 40)

	got, err := store.TopScores("gems", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Player != "ada" || got[1].Player != "" {
		t.Errorf("players = %+v", got)
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	// A database written before scores carried a player.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(migrations[0]); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("PRAGMA user_version = 1"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO scores (game_id, score) VALUES ('brawler', 120)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	got, err := store.TopScores("brawler", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Score != 120 || got[0].Player != "" {
		t.Errorf("old row = %+v", got)
	}
	store.Close()

	// Reopening an up-to-date database runs nothing.
	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer again.Close()

	var version int
	if err := again.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("user_version = %d, want %d", version, len(migrations))
	}
}
