package transcription

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"voiceprep/internal/services"
)

// ProcessedPrefix marks resampled copies written next to their source.
const ProcessedPrefix = "processed_"

// ResolveSpeakerDir returns the directory to transcribe. An empty speaker
// selects the first sub-directory of audioDir in lexical order.
func ResolveSpeakerDir(audioDir, speaker string) (string, error) {
	if speaker != "" {
		dir := filepath.Join(audioDir, speaker)
		info, err := os.Stat(dir)
		if err != nil {
			return "", services.Wrap(services.ErrNotFound, "transcribe", "resolve speaker", dir, err)
		}
		if !info.IsDir() {
			return "", services.Wrap(services.ErrValidation, "transcribe", "resolve speaker", dir+" is not a directory", nil)
		}
		return dir, nil
	}

	entries, err := os.ReadDir(audioDir)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "transcribe", "resolve speaker", audioDir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", services.Wrap(services.ErrNotFound, "transcribe", "resolve speaker",
			fmt.Sprintf("no speaker directories under %s", audioDir), nil)
	}
	sort.Strings(names)
	return filepath.Join(audioDir, names[0]), nil
}

// ListAudio returns the files at the top level of dir in lexical order,
// excluding processed_ copies. skipped counts the excluded copies.
func ListAudio(dir string) (files []string, skipped int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("list audio: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ProcessedPrefix) {
			skipped++
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, skipped, nil
}

// ProcessedPath is where a kept resampled copy of source is written.
func ProcessedPath(source string) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return filepath.Join(filepath.Dir(source), ProcessedPrefix+stem+".wav")
}
