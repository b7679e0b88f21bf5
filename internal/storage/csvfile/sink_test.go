package csvfile_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"appstore_reviews/internal/domain"
	"appstore_reviews/internal/storage/csvfile"
)

func sample() []domain.Review {
	return []domain.Review{
		{
			UserName:   "alice",
			Title:      "great",
			Review:     "love it,\nreally",
			IsEdited:   false,
			LastUpdate: "2024-03-01T10:00:00Z",
			Rating:     5,
			DeveloperResponse: &domain.DeveloperResponse{
				DeveloperID: 7001, Body: "thanks", Modified: "2024-03-02",
			},
		},
		{
			UserName:   "bob",
			Title:      `say "hi"`,
			Review:     "crashes",
			IsEdited:   true,
			LastUpdate: "2024-03-02T11:00:00Z",
			Rating:     2,
		},
	}
}

func TestWrite_HeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := csvfile.New(path).Write(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	out := string(b)

	if !bytes.HasPrefix(b, []byte("user_name,title,review,is_edited,last_update,rating\n")) {
		t.Fatalf("missing or wrong header:\n%s", out)
	}
	for _, want := range []string{"alice", "true", "false", `"say ""hi"""`, "2024-03-02T11:00:00Z,2"} {
		if !bytes.Contains(b, []byte(want)) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	// developer responses never reach this format
	if bytes.Contains(b, []byte("thanks")) || bytes.Contains(b, []byte("7001")) {
		t.Fatalf("developer response leaked into csv:\n%s", out)
	}
}

func TestWrite_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := csvfile.New(path)

	if err := s.Write(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	first, _ := os.ReadFile(path)

	if err := s.Write(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, _ := os.ReadFile(path)

	if !bytes.Equal(first, second) {
		t.Fatalf("repeated writes differ:\n%s\n---\n%s", first, second)
	}
}

func TestWrite_OverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	s := csvfile.New(path)

	if err := s.Write(context.Background(), sample()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := s.Write(context.Background(), nil); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	b, _ := os.ReadFile(path)
	if string(b) != "user_name,title,review,is_edited,last_update,rating\n" {
		t.Fatalf("expected header-only file after empty write, got:\n%s", b)
	}
}

func TestWrite_BadDestination(t *testing.T) {
	err := csvfile.New(filepath.Join(t.TempDir(), "missing", "out.csv")).
		Write(context.Background(), sample())
	if err == nil {
		t.Fatalf("expected error for unwritable destination")
	}
	if !errors.Is(err, domain.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}
