package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTimestamp is returned when timestamp text does not hold a
// complete month, day and year
var ErrMalformedTimestamp = errors.New("malformed timestamp")

var timestampSeparators = strings.NewReplacer(",", " ", ":", " ", "/", " ")

// PostGrouper tracks which post captions and media belong to. A post starts
// at its timestamp and lasts until the next one.
type PostGrouper struct {
	root     string
	sink     RecordSink
	captions *captionRenderer
	current  *PostGroup
}

func NewPostGrouper(root string, sink RecordSink, captions *captionRenderer) *PostGrouper {
	return &PostGrouper{
		root:     root,
		sink:     sink,
		captions: captions,
	}
}

// OnTimestamp starts a new post group. The group folder and record file are
// created before the timestamp line is written. On failure there is no
// current group until the next valid timestamp.
func (g *PostGrouper) OnTimestamp(raw string) (*PostGroup, error) {
	g.current = nil

	text := normalizeText(raw)
	key, err := parseTimestampKey(text)
	if err != nil {
		return nil, err
	}

	folder := filepath.Join(g.root, key)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, fmt.Errorf("creating post folder %s: %w", folder, err)
	}

	recordPath := filepath.Join(folder, recordFileName)
	f, err := os.OpenFile(recordPath, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating record file %s: %w", recordPath, err)
	}
	f.Close()

	group := &PostGroup{
		Key:        key,
		Timestamp:  text,
		Folder:     folder,
		RecordPath: recordPath,
	}

	if err := g.sink.Record(group, "TIMESTAMP: "+text); err != nil {
		return nil, fmt.Errorf("recording timestamp: %w", err)
	}

	g.current = group
	return group, nil
}

// OnCaption appends the caption to the current group. It reports false when
// the caption was dropped.
func (g *PostGrouper) OnCaption(c Caption) (bool, error) {
	if g.current == nil {
		return false, nil
	}

	text := g.captions.Render(c)
	if text == "" {
		return false, nil
	}

	if err := g.sink.Record(g.current, "CAPTION: "+text); err != nil {
		return false, fmt.Errorf("recording caption: %w", err)
	}
	return true, nil
}

// Current returns the group captions and media are attached to
func (g *PostGrouper) Current() (*PostGroup, bool) {
	return g.current, g.current != nil
}

// parseTimestampKey converts feed timestamp text such as
// "Jan 5, 2024 at 10:00" into a MM-DD-YYYY key. The time after "at" is
// ignored. The month may be a name or a number, and day-first order
// ("5 January 2024") is accepted.
func parseTimestampKey(text string) (string, error) {
	fields := strings.Fields(timestampSeparators.Replace(text))

	var tokens []string
	for _, f := range fields {
		if strings.EqualFold(f, "at") {
			break
		}
		tokens = append(tokens, f)
	}

	if len(tokens) != 3 {
		return "", fmt.Errorf("%w: %q has %d date parts, want 3", ErrMalformedTimestamp, text, len(tokens))
	}

	monthToken, dayToken, yearToken := tokens[0], tokens[1], tokens[2]
	if _, err := strconv.Atoi(monthToken); err == nil {
		if _, ok := parseMonthName(dayToken); ok {
			monthToken, dayToken = dayToken, monthToken
		}
	}

	month, ok := parseMonth(monthToken)
	if !ok {
		return "", fmt.Errorf("%w: %q has unknown month %q", ErrMalformedTimestamp, text, monthToken)
	}

	day, err := strconv.Atoi(dayToken)
	if err != nil {
		return "", fmt.Errorf("%w: %q has invalid day %q", ErrMalformedTimestamp, text, dayToken)
	}

	year, err := strconv.Atoi(yearToken)
	if err != nil || len(yearToken) != 4 {
		return "", fmt.Errorf("%w: %q has invalid year %q", ErrMalformedTimestamp, text, yearToken)
	}

	// Reject days that time.Date would roll into the next month
	if day < 1 || time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Day() != day {
		return "", fmt.Errorf("%w: %q has invalid day %d", ErrMalformedTimestamp, text, day)
	}

	return fmt.Sprintf("%02d-%02d-%04d", int(month), day, year), nil
}

func parseMonth(token string) (time.Month, bool) {
	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > 12 {
			return 0, false
		}
		return time.Month(n), true
	}
	return parseMonthName(token)
}

// parseMonthName accepts full month names and abbreviations of three or
// more letters, case-insensitively
func parseMonthName(token string) (time.Month, bool) {
	token = strings.ToLower(strings.TrimSuffix(token, "."))
	if len(token) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		if strings.HasPrefix(strings.ToLower(m.String()), token) {
			return m, true
		}
	}
	return 0, false
}
