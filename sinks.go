package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	imageLedgerFile = "imageURLs.txt"
	videoLedgerFile = "videoURLs.txt"
	diagnosticsFile = "errorlog.txt"
	recordFileName  = "post.txt"
)

// RecordSink receives every text line the extractor produces, one named
// channel per destination
type RecordSink interface {
	Diagnostic(format string, args ...any)
	ImageLedger(url string) error
	VideoLedger(url string) error
	Record(group *PostGroup, line string) error
}

// FileSink appends lines to files under the outputs root. All appends go
// through one mutex so download workers can log failures safely.
type FileSink struct {
	root string
	mu   sync.Mutex
}

// NewFileSink creates the outputs root and returns a sink writing into it
func NewFileSink(root string) (*FileSink, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", root, err)
	}
	return &FileSink{root: root}, nil
}

// Root returns the outputs root
func (s *FileSink) Root() string {
	return s.root
}

// Diagnostic records a recoverable failure in errorlog.txt and the process log
func (s *FileSink) Diagnostic(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("Error: %s", msg)
	if err := s.appendLine(filepath.Join(s.root, diagnosticsFile), msg); err != nil {
		log.Printf("Error: writing %s: %v", diagnosticsFile, err)
	}
}

func (s *FileSink) ImageLedger(url string) error {
	return s.appendLine(filepath.Join(s.root, imageLedgerFile), url)
}

func (s *FileSink) VideoLedger(url string) error {
	return s.appendLine(filepath.Join(s.root, videoLedgerFile), url)
}

func (s *FileSink) Record(group *PostGroup, line string) error {
	return s.appendLine(group.RecordPath, line)
}

func (s *FileSink) appendLine(path, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
