package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	return ReadMatching(path, maxLines, nil)
}

// ReadMatching returns at most maxLines from the end of the file at path,
// keeping only lines accepted by match. A nil match accepts everything.
// A missing file yields no lines and no error.
func ReadMatching(path string, maxLines int, match func(string) bool) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if match != nil && !match(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LevelMatcher accepts lines mentioning the given log level. Levels render as
// level=WARN in console format and "level":"WARN" in json format; both are
// matched case-insensitively.
func LevelMatcher(level string) func(string) bool {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return nil
	}
	console := "level=" + level
	jsonForm := `"level":"` + level + `"`
	return func(line string) bool {
		upper := strings.ToUpper(line)
		return strings.Contains(upper, strings.ToUpper(console)) ||
			strings.Contains(upper, strings.ToUpper(jsonForm))
	}
}
