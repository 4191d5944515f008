package checkpoint_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"voiceprep/internal/annotation"
	"voiceprep/internal/checkpoint"
	"voiceprep/internal/logging"
)

const prefix = "short_character_anno_"

func records(n int) []annotation.Record {
	out := make([]annotation.Record, n)
	for i := range out {
		out[i] = annotation.Record{Path: filepath.Join("voices", "a", string(rune('a'+i%26))+".wav"), Text: "[ZH]x[ZH]"}
	}
	return out
}

func TestResumeWithoutCheckpoints(t *testing.T) {
	store := checkpoint.New(filepath.Join(t.TempDir(), "missing"), prefix, 2, logging.NewNop())
	got, info, err := store.Resume()
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if len(got) != 0 || info.Path != "" {
		t.Fatalf("expected empty state, got %d records and %#v", len(got), info)
	}
}

func TestSaveRotatesAndResumesLatest(t *testing.T) {
	dir := t.TempDir()
	store := checkpoint.New(dir, prefix, 2, logging.NewNop())

	for _, n := range []int{100, 200, 300} {
		if _, err := store.Save(records(n)); err != nil {
			t.Fatalf("Save(%d) returned error: %v", n, err)
		}
	}

	infos, err := store.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 checkpoints after rotation, got %d", len(infos))
	}
	if infos[0].Count != 200 || infos[1].Count != 300 {
		t.Fatalf("unexpected surviving checkpoints: %#v", infos)
	}
	if _, err := os.Stat(filepath.Join(dir, prefix+"100.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected oldest checkpoint to be removed, got %v", err)
	}

	got, info, err := store.Resume()
	if err != nil {
		t.Fatalf("Resume returned error: %v", err)
	}
	if len(got) != 300 || info.Count != 300 {
		t.Fatalf("expected to resume 300 records, got %d (%#v)", len(got), info)
	}
}

func TestLatestUsesNumericOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{prefix + "9.txt", prefix + "10.txt", prefix + "abc.txt", "notes.txt", prefix + ".txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("a.wav|[ZH]x[ZH]\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store := checkpoint.New(dir, prefix, 5, nil)
	latest, ok, err := store.Latest()
	if err != nil || !ok {
		t.Fatalf("Latest returned ok=%v err=%v", ok, err)
	}
	if latest.Count != 10 {
		t.Fatalf("expected count 10 to win over 9, got %d", latest.Count)
	}
	infos, _ := store.List()
	if len(infos) != 2 {
		t.Fatalf("expected only well-formed names to be listed, got %#v", infos)
	}
}

func TestKeepOneIsMinimum(t *testing.T) {
	dir := t.TempDir()
	store := checkpoint.New(dir, prefix, 0, nil)
	for _, n := range []int{1, 2} {
		if _, err := store.Save(records(n)); err != nil {
			t.Fatal(err)
		}
	}
	infos, _ := store.List()
	if len(infos) != 1 || infos[0].Count != 2 {
		t.Fatalf("expected a single newest checkpoint, got %#v", infos)
	}
}

func TestLockIsExclusive(t *testing.T) {
	dir := t.TempDir()
	first := checkpoint.New(dir, prefix, 2, nil)
	second := checkpoint.New(dir, prefix, 2, nil)

	if err := first.Lock(); err != nil {
		t.Fatalf("first Lock returned error: %v", err)
	}
	if err := second.Lock(); !errors.Is(err, checkpoint.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock returned error: %v", err)
	}
	if err := second.Lock(); err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = second.Unlock()
}
