package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"voiceprep/internal/logs"
)

func TestTailLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprep.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "b" || result.Lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", result.Lines)
	}
	if result.Offset != 6 {
		t.Fatalf("expected offset 6, got %d", result.Offset)
	}
}

func TestTailMatchFiltersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	content := "error\ncontent: one\nmatch: x\nerror\ncontent: two\nmatch: y\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 10, Match: "content:"})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[1] != "content: two" {
		t.Fatalf("unexpected lines: %#v", result.Lines)
	}
}

func TestTailMissingFile(t *testing.T) {
	result, err := logs.Tail(context.Background(), filepath.Join(t.TempDir(), "absent.log"), logs.TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Fatalf("expected empty result, got %#v", result)
	}
}

func TestTailOffsetPastEndRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprep.log")
	if err := os.WriteFile(path, []byte("fresh\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: 1000})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 1 || result.Lines[0] != "fresh" {
		t.Fatalf("expected rotated file to be read from the start, got %#v", result.Lines)
	}
}

func TestTailPartialLineWaitsForNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprep.log")
	if err := os.WriteFile(path, []byte("done\npart"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: 0})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 1 || result.Offset != 5 {
		t.Fatalf("expected only the complete line, got %#v", result)
	}
}

func TestTailFollowWaits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprep.log")
	if err := os.WriteFile(path, []byte("start\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	result, err := logs.Tail(ctx, path, logs.TailOptions{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("initial tail: %v", err)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("expected initial line, got %#v", result.Lines)
	}

	done := make(chan struct{})
	go func(offset int64) {
		defer close(done)
		res, err := logs.Tail(ctx, path, logs.TailOptions{Offset: offset, Follow: true, Wait: 5 * time.Second})
		if err != nil {
			t.Errorf("follow tail error: %v", err)
		}
		if len(res.Lines) != 1 || res.Lines[0] != "later" {
			t.Errorf("unexpected follow lines: %#v", res.Lines)
		}
	}(result.Offset)

	time.Sleep(200 * time.Millisecond)
	appendLine(t, path, "later")

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("tail follow did not return")
	}
}

func TestFollowEmitsUntilCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voiceprep.log")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var seen []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, 1, "", func(line string) {
			mu.Lock()
			seen = append(seen, line)
			mu.Unlock()
		})
	}()

	time.Sleep(200 * time.Millisecond)
	appendLine(t, path, "three")

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(seen)
		mu.Unlock()
		if n >= 2 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("follow: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != "two" || seen[1] != "three" {
		t.Fatalf("unexpected lines: %#v", seen)
	}
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line + "\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
}
