package main

import "golang.org/x/net/html/atom"

// Element is a read-only view of one node of the parsed document
type Element interface {
	Tag() atom.Atom
	Text() string
	Attr(name string) (string, bool)
}

// Attributes is the attribute lookup of an element
type Attributes interface {
	Attr(name string) (string, bool)
}

// ClassifiedElement is the semantic role of an element in the feed
type ClassifiedElement interface {
	classified()
}

// Timestamp marks the start of a post
type Timestamp struct {
	Raw string
}

// Caption is the text of a post
type Caption struct {
	Raw    string
	Source Element
}

// MediaContainer is a candidate video post
type MediaContainer struct {
	Attrs Attributes
}

// ImageMarker is a candidate image post
type ImageMarker struct {
	Attrs Attributes
}

// Irrelevant is any element the extractor ignores
type Irrelevant struct{}

func (Timestamp) classified()      {}
func (Caption) classified()        {}
func (MediaContainer) classified() {}
func (ImageMarker) classified()    {}
func (Irrelevant) classified()     {}

// PostGroup is one logical post on disk
type PostGroup struct {
	Key        string // MM-DD-YYYY
	Timestamp  string
	Folder     string
	RecordPath string
}

// ImageRef is a decoded image URL
type ImageRef struct {
	URL string
}

// VideoRef is a resolved video descriptor; either field may be empty
type VideoRef struct {
	URL string
	ID  string
}

// AssetKind classifies a media URL by its file extension
type AssetKind int

const (
	AssetUnknown AssetKind = iota
	AssetImage
	AssetVideo
)

func (k AssetKind) String() string {
	switch k {
	case AssetImage:
		return "image"
	case AssetVideo:
		return "video"
	default:
		return "unknown"
	}
}

// DownloadTask is a single asset to fetch and store
type DownloadTask struct {
	SourceURL   string
	Destination string
}

// DownloadStatus represents the outcome of a download
type DownloadStatus string

const (
	StatusSuccess DownloadStatus = "success"
	StatusSkipped DownloadStatus = "skipped"
	StatusError   DownloadStatus = "error"
)

// DownloadResult tracks the outcome of each download task
type DownloadResult struct {
	Task   DownloadTask
	Status DownloadStatus
	Error  error
}

// ExtractionSummary counts what a run produced
type ExtractionSummary struct {
	Posts            int
	Captions         int
	Images           int
	Videos           int
	FailedElements   int
	DownloadsOK      int
	DownloadsSkipped int
	DownloadsFailed  int
}
