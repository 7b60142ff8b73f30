package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/wordcloud/pkg/core/geom"
	errs "github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/model"
)

func sampleLayout() model.Layout {
	return model.Layout{
		Width:  800,
		Height: 600,
		Seed:   42,
		Words: []model.PlacedWord{{
			Text: "gopher", Value: 10, X: 400, Y: 300, FontSize: 48,
			Width: 150, Height: 48,
			Box: []geom.Point{{X: 310, Y: 270}, {X: 490, Y: 270}, {X: 490, Y: 330}, {X: 310, Y: 330}},
		}},
		Dropped:  []model.Word{{Text: "lost", Value: 1}},
		Attempts: map[string]int{"gopher": 1, "lost": 400},
		Stats:    model.Stats{Placed: 1, Total: 2, Dropped: 1, AverageAttempts: 200.5, Coverage: 2.3},
	}
}

// testStore runs the behavior every backend shares.
func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("save assigns id", func(t *testing.T) {
		l := sampleLayout()
		if err := s.Save(ctx, &l); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := ValidateID(l.ID); err != nil {
			t.Errorf("Save assigned invalid id %q", l.ID)
		}
		if l.CreatedAt.IsZero() {
			t.Error("Save should set CreatedAt")
		}

		got, err := s.Get(ctx, l.ID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got.ID != l.ID || len(got.Words) != 1 || got.Words[0].Text != "gopher" {
			t.Errorf("Get returned %+v", got)
		}
		if len(got.Words[0].Box) != 4 || got.Words[0].Box[2] != (geom.Point{X: 490, Y: 330}) {
			t.Errorf("box not preserved: %v", got.Words[0].Box)
		}
		if got.Attempts["lost"] != 400 || got.Stats.Dropped != 1 {
			t.Errorf("diagnostics not preserved: %+v / %+v", got.Attempts, got.Stats)
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := s.Get(ctx, NewID())
		if !errs.Is(err, errs.ErrCodeLayoutNotFound) {
			t.Errorf("Get(unknown) = %v, want LAYOUT_NOT_FOUND", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"", "../etc/passwd", "not-a-uuid"} {
			if _, err := s.Get(ctx, id); !errs.Is(err, errs.ErrCodeInvalidInput) {
				t.Errorf("Get(%q) = %v, want INVALID_INPUT", id, err)
			}
		}
		l := sampleLayout()
		l.ID = "../escape"
		if err := s.Save(ctx, &l); !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("Save with bad id = %v, want INVALID_INPUT", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		l := sampleLayout()
		if err := s.Save(ctx, &l); err != nil {
			t.Fatal(err)
		}
		if err := s.Delete(ctx, l.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get(ctx, l.ID); !errs.Is(err, errs.ErrCodeLayoutNotFound) {
			t.Errorf("Get after Delete = %v", err)
		}
		if err := s.Delete(ctx, l.ID); !errs.Is(err, errs.ErrCodeLayoutNotFound) {
			t.Errorf("second Delete = %v, want LAYOUT_NOT_FOUND", err)
		}
	})

	t.Run("list and prune", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		var ids []string
		for i := range 3 {
			l := sampleLayout()
			l.CreatedAt = base.Add(time.Duration(i) * time.Hour)
			if err := s.Save(ctx, &l); err != nil {
				t.Fatal(err)
			}
			ids = append(ids, l.ID)
		}

		list, err := s.List(ctx, 2)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("List(2) returned %d summaries", len(list))
		}
		// Layouts saved by earlier subtests are newer than base.
		all, err := s.List(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if all[len(all)-1].ID != ids[0] {
			t.Errorf("oldest layout should be last, got %s want %s", all[len(all)-1].ID, ids[0])
		}
		for i := 1; i < len(all); i++ {
			if all[i].CreatedAt.After(all[i-1].CreatedAt) {
				t.Errorf("List not newest first at %d", i)
			}
		}

		n, err := s.Prune(ctx, base.Add(90*time.Minute))
		if err != nil {
			t.Fatalf("Prune: %v", err)
		}
		if n != 2 {
			t.Errorf("Prune removed %d layouts, want 2", n)
		}
		if _, err := s.Get(ctx, ids[2]); err != nil {
			t.Errorf("newest layout should survive prune: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	testStore(t, s)
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	l := sampleLayout()
	if err := s.Save(ctx, &l); err != nil {
		t.Fatal(err)
	}
	l.Words[0].Text = "mutated"
	l.Words[0].Box[0].X = -1

	got, err := s.Get(ctx, l.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Words[0].Text != "gopher" || got.Words[0].Box[0].X != 310 {
		t.Error("stored layout shares memory with the caller")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestFileStoreSkipsCorruptFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.Path() != dir {
		t.Errorf("Path = %q, want %q", s.Path(), dir)
	}

	l := sampleLayout()
	if err := s.Save(ctx, &l); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, NewID()+".json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != l.ID {
		t.Errorf("List = %+v, want only %s", list, l.ID)
	}
}

func TestFileStoreDefaultDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	s, err := NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(s.Path()) != "layouts" || filepath.Base(filepath.Dir(s.Path())) != "wordcloud" {
		t.Errorf("default path = %q, want .../wordcloud/layouts", s.Path())
	}
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("WORDCLOUD_TEST_MONGO")
	if uri == "" {
		t.Skip("WORDCLOUD_TEST_MONGO not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := "wordcloud_test_" + NewID()[:8]
	s, err := NewMongoStore(ctx, uri, db)
	if err != nil {
		t.Fatalf("NewMongoStore: %v", err)
	}
	defer func() {
		_ = s.client.Database(db).Drop(context.Background())
		s.Close()
	}()
	testStore(t, s)
}

func TestSummarize(t *testing.T) {
	l := sampleLayout()
	l.ID = NewID()
	sum := Summarize(l)
	if sum.ID != l.ID || sum.Width != 800 || sum.Stats.Placed != 1 {
		t.Errorf("Summarize = %+v", sum)
	}
}
