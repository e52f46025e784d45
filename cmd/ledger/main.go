package main

import (
	"bufio"
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

var recordURLPattern = regexp.MustCompile(`^(IMAGE|VIDEO) URL:\s*(\S+)$`)

// recordedURL is a media URL found in a post record file
type recordedURL struct {
	kind   string // IMAGE or VIDEO
	url    string
	folder string
}

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: ledger <rebuild|missing> <output-directory>")
	}

	command := os.Args[1]
	outputDir := os.Args[2]

	switch command {
	case "rebuild":
		if err := rebuildLedgers(outputDir); err != nil {
			log.Fatal(err)
		}
	case "missing":
		if err := listMissing(outputDir); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("Unknown command %q", command)
	}
}

// collectRecordedURLs reads every post.txt below outputDir in directory order
func collectRecordedURLs(outputDir string) ([]recordedURL, error) {
	var urls []recordedURL

	err := filepath.WalkDir(outputDir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Continue on errors
		}
		if d.IsDir() || d.Name() != "post.txt" {
			return nil
		}

		found, err := readRecordFile(p)
		if err != nil {
			log.Printf("Error reading %s: %v", p, err)
			return nil
		}
		urls = append(urls, found...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return urls, nil
}

func readRecordFile(recordPath string) ([]recordedURL, error) {
	f, err := os.Open(recordPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []recordedURL
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		matches := recordURLPattern.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if len(matches) < 3 {
			continue
		}
		urls = append(urls, recordedURL{
			kind:   matches[1],
			url:    matches[2],
			folder: filepath.Dir(recordPath),
		})
	}
	return urls, scanner.Err()
}

// rebuildLedgers rewrites imageURLs.txt and videoURLs.txt from the post records
func rebuildLedgers(outputDir string) error {
	urls, err := collectRecordedURLs(outputDir)
	if err != nil {
		return err
	}

	var images, videos strings.Builder
	imageCount, videoCount := 0, 0
	for _, u := range urls {
		switch u.kind {
		case "IMAGE":
			images.WriteString(u.url + "\n")
			imageCount++
		case "VIDEO":
			videos.WriteString(u.url + "\n")
			videoCount++
		}
	}

	if err := os.WriteFile(filepath.Join(outputDir, "imageURLs.txt"), []byte(images.String()), 0644); err != nil {
		return fmt.Errorf("writing image ledger: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "videoURLs.txt"), []byte(videos.String()), 0644); err != nil {
		return fmt.Errorf("writing video ledger: %w", err)
	}

	fmt.Printf("Rebuilt ledgers: %d images, %d videos\n", imageCount, videoCount)
	return nil
}

// listMissing prints recorded media whose file is absent from its post folder
func listMissing(outputDir string) error {
	urls, err := collectRecordedURLs(outputDir)
	if err != nil {
		return err
	}

	missing := 0
	for _, u := range urls {
		name := mediaFileName(u.url)
		if name == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(u.folder, name)); os.IsNotExist(err) {
			fmt.Printf("%s\t%s\n", filepath.Join(u.folder, name), u.url)
			missing++
		}
	}

	fmt.Printf("\n%d missing files\n", missing)
	return nil
}

// mediaFileName returns the .jpg or .mp4 file name a URL is stored under
func mediaFileName(rawURL string) string {
	base := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		base = path.Base(u.Path)
	}
	for _, ext := range []string{".jpg", ".mp4"} {
		if i := strings.Index(base, ext); i > 0 {
			return base[:i+len(ext)]
		}
	}
	return ""
}
