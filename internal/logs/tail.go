package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// TailOptions controls a single Tail call.
type TailOptions struct {
	// Offset is the byte position to resume from. A negative offset reads
	// the last Limit lines instead.
	Offset int64
	Limit  int
	// Match keeps only lines containing the substring.
	Match  string
	Follow bool
	// Wait bounds how long a follow call polls for new lines.
	Wait time.Duration
}

// TailResult holds the lines read and the offset to pass to the next call.
type TailResult struct {
	Lines  []string
	Offset int64
}

const pollInterval = 250 * time.Millisecond

// Tail reads lines from path. A missing file yields no lines and offset 0 so
// callers can start following a log before the first run creates it.
func Tail(ctx context.Context, path string, opts TailOptions) (TailResult, error) {
	result := TailResult{Offset: opts.Offset}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Offset = 0
			return result, nil
		}
		return result, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		return result, fmt.Errorf("log path %q is a directory", path)
	}
	if opts.Wait < 0 {
		opts.Wait = 0
	}

	if opts.Offset < 0 {
		lines, offset, err := lastLines(path, opts.Limit, opts.Match)
		if err != nil {
			return result, err
		}
		result = TailResult{Lines: lines, Offset: offset}
		if opts.Follow && opts.Wait > 0 && len(lines) == 0 {
			return poll(ctx, path, offset, opts.Match, opts.Wait)
		}
		return result, nil
	}

	offset := opts.Offset
	if offset > info.Size() {
		// rotated or truncated
		offset = 0
	}
	lines, next, err := readFrom(path, offset, opts.Match)
	if err != nil {
		return result, err
	}
	if opts.Follow && opts.Wait > 0 && len(lines) == 0 {
		return poll(ctx, path, next, opts.Match, opts.Wait)
	}
	return TailResult{Lines: lines, Offset: next}, nil
}

// Follow prints the last limit lines of path through emit, then keeps
// emitting new lines until ctx is cancelled.
func Follow(ctx context.Context, path string, limit int, match string, emit func(string)) error {
	res, err := Tail(ctx, path, TailOptions{Offset: -1, Limit: limit, Match: match})
	if err != nil {
		return err
	}
	for {
		for _, line := range res.Lines {
			emit(line)
		}
		if len(res.Lines) == 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollInterval):
			}
		}
		res, err = Tail(ctx, path, TailOptions{Offset: res.Offset, Match: match, Follow: true, Wait: 5 * time.Second})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func lastLines(path string, limit int, match string) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, end, nil
	}

	ring := make([]string, 0, limit)
	start := 0
	end, err := scanLines(file, match, func(line string) {
		if len(ring) < limit {
			ring = append(ring, line)
			return
		}
		ring[start] = line
		start = (start + 1) % limit
	})
	if err != nil {
		return nil, 0, err
	}

	lines := make([]string, 0, len(ring))
	lines = append(lines, ring[start:]...)
	lines = append(lines, ring[:start]...)
	return lines, end, nil
}

func readFrom(path string, offset int64, match string) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}
	var lines []string
	end, err := scanLines(file, match, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return nil, 0, err
	}
	return lines, end, nil
}

// scanLines feeds matching lines to fn and returns the file position after
// the last complete line.
func scanLines(file *os.File, match string, fn func(string)) (int64, error) {
	pos, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("determine log offset: %w", err)
	}
	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			// a partial trailing line is re-read once it is complete
			return pos, nil
		}
		if err != nil {
			return 0, fmt.Errorf("read log file: %w", err)
		}
		pos += int64(len(line))
		line = strings.TrimRight(line, "\r\n")
		if match == "" || strings.Contains(line, match) {
			fn(line)
		}
	}
}

func poll(ctx context.Context, path string, offset int64, match string, wait time.Duration) (TailResult, error) {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		lines, next, err := readFrom(path, offset, match)
		if err != nil {
			return TailResult{Offset: offset}, err
		}
		if len(lines) > 0 || time.Now().After(deadline) {
			return TailResult{Lines: lines, Offset: next}, nil
		}
		offset = next

		select {
		case <-ctx.Done():
			return TailResult{Offset: offset}, ctx.Err()
		case <-ticker.C:
		}
	}
}
