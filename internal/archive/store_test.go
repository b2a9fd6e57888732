package archive

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nba-league-service/internal/fixture"
	"github.com/preston-bernstein/nba-league-service/internal/league"
	"github.com/preston-bernstein/nba-league-service/internal/snapshots"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("set TEST_POSTGRES_DSN to run archive integration tests")
	}
	db, err := Open(dsn, nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A unique league name isolates each test's rows.
	store := New(db, "test-"+uuid.NewString())
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Transaction(store.deleteAll)
	})
	return store
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, snapshots.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot on empty league, got %v", err)
	}

	original, err := fixture.NewLeague(nil, nil)
	if err != nil {
		t.Fatalf("expected sample league, got %v", err)
	}
	if err := store.Save(ctx, original.Document()); err != nil {
		t.Fatalf("expected save, got %v", err)
	}
	// A second save replaces rather than appends.
	if err := store.Save(ctx, original.Document()); err != nil {
		t.Fatalf("expected second save, got %v", err)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("expected load, got %v", err)
	}
	if len(doc.Teams) != 6 || len(doc.Players) != 12 || len(doc.Matches) != 10 {
		t.Fatalf("unexpected counts %d/%d/%d", len(doc.Teams), len(doc.Players), len(doc.Matches))
	}

	reloaded, err := league.FromDocument(doc, nil, nil)
	if err != nil {
		t.Fatalf("expected reload, got %v", err)
	}
	if !reflect.DeepEqual(original.Standings(), reloaded.Standings()) {
		t.Fatalf("standings differ after archive round-trip")
	}
	if !reflect.DeepEqual(original.TopPlayers("points", 5), reloaded.TopPlayers("points", 5)) {
		t.Fatalf("leaders differ after archive round-trip")
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := Open("", nil); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
