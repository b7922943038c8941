package conversation

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/database"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	return logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
}

func TestLog_AppendAndRecent(t *testing.T) {
	l := NewLog(10)

	for i := 0; i < 3; i++ {
		l.Append(Turn{ID: fmt.Sprintf("trn-%d", i), Role: RoleUser, Content: fmt.Sprintf("msg %d", i)})
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}

	recent := l.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Recent(2) length = %d, want 2", len(recent))
	}
	if recent[0].ID != "trn-1" || recent[1].ID != "trn-2" {
		t.Errorf("Recent(2) = [%s %s], want oldest-first tail [trn-1 trn-2]", recent[0].ID, recent[1].ID)
	}

	all := l.Recent(0)
	if len(all) != 3 || all[0].ID != "trn-0" {
		t.Errorf("Recent(0) = %v, want all three turns oldest first", all)
	}
}

func TestLog_EvictsOldestAtCapacity(t *testing.T) {
	l := NewLog(3)

	for i := 0; i < 5; i++ {
		l.Append(Turn{ID: fmt.Sprintf("trn-%d", i)})
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want capacity bound of 3", l.Len())
	}
	got := l.Recent(0)
	want := []string{"trn-2", "trn-3", "trn-4"}
	for i, turn := range got {
		if turn.ID != want[i] {
			t.Errorf("turn[%d] = %s, want %s", i, turn.ID, want[i])
		}
	}
}

func TestLog_DefaultCapacity(t *testing.T) {
	l := NewLog(0)
	for i := 0; i < defaultCapacity+10; i++ {
		l.Append(Turn{ID: fmt.Sprintf("trn-%d", i)})
	}
	if l.Len() != defaultCapacity {
		t.Errorf("Len() = %d, want default capacity %d", l.Len(), defaultCapacity)
	}
}

func TestHistory_Exchange(t *testing.T) {
	h := New(10, EchoResponder{}, testLogger(t))

	reply, length := h.Exchange(context.Background(), "turn on the lights")

	if reply != "Processing: turn on the lights" {
		t.Errorf("reply = %q, want echo acknowledgement", reply)
	}
	if length != 2 {
		t.Errorf("history length = %d, want 2 (user + assistant)", length)
	}

	turns := h.Recent(0)
	if len(turns) != 2 {
		t.Fatalf("Recent(0) length = %d, want 2", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Content != "turn on the lights" {
		t.Errorf("first turn = %+v, want user message", turns[0])
	}
	if turns[1].Role != RoleAssistant || turns[1].Content != reply {
		t.Errorf("second turn = %+v, want assistant reply", turns[1])
	}
}

func TestHistory_LengthGrowsUntilBound(t *testing.T) {
	h := New(4, EchoResponder{}, testLogger(t))

	for i := 0; i < 5; i++ {
		_, length := h.Exchange(context.Background(), fmt.Sprintf("message %d", i))
		want := (i + 1) * 2
		if want > 4 {
			want = 4
		}
		if length != want {
			t.Errorf("exchange %d: length = %d, want %d", i, length, want)
		}
	}
}

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck
	if err := db.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	return NewSQLiteRepository(db)
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := testRepo(t)

	h := New(10, EchoResponder{}, testLogger(t))
	h.SetRepository(repo)

	h.Exchange(context.Background(), "hello")
	h.Exchange(context.Background(), "lights off")

	turns, err := repo.RecentTurns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentTurns() error = %v", err)
	}
	if len(turns) != 4 {
		t.Fatalf("stored turns = %d, want 4", len(turns))
	}

	wantRoles := []string{RoleUser, RoleAssistant, RoleUser, RoleAssistant}
	for i, turn := range turns {
		if turn.Role != wantRoles[i] {
			t.Errorf("turn[%d] role = %s, want %s", i, turn.Role, wantRoles[i])
		}
	}
	if turns[0].Content != "hello" {
		t.Errorf("first turn content = %q, want hello", turns[0].Content)
	}
	if turns[2].Content != "lights off" {
		t.Errorf("third turn content = %q, want lights off", turns[2].Content)
	}
}

func TestSQLiteRepository_Limit(t *testing.T) {
	repo := testRepo(t)

	for i := 0; i < 6; i++ {
		err := repo.AppendTurn(context.Background(), Turn{
			ID:      fmt.Sprintf("trn-%d", i),
			Role:    RoleUser,
			Content: fmt.Sprintf("msg %d", i),
		})
		if err != nil {
			t.Fatalf("AppendTurn() error = %v", err)
		}
	}

	turns, err := repo.RecentTurns(context.Background(), 2)
	if err != nil {
		t.Fatalf("RecentTurns() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want 2", len(turns))
	}
	if turns[0].ID != "trn-4" || turns[1].ID != "trn-5" {
		t.Errorf("turns = [%s %s], want newest two oldest-first [trn-4 trn-5]", turns[0].ID, turns[1].ID)
	}
}
