package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"
)

// FeedExtractor walks the elements of a saved feed page once and writes
// post records, ledgers and download tasks
type FeedExtractor struct {
	watchBaseURL string
	sink         RecordSink
	grouper      *PostGrouper
	resolver     MediaResolver
	assets       AssetSink
}

// NewFeedExtractor creates an extractor writing post folders under root.
// A nil assets sink disables downloads.
func NewFeedExtractor(root string, settings *Settings, sink RecordSink, assets AssetSink) *FeedExtractor {
	return &FeedExtractor{
		watchBaseURL: settings.WatchBaseURL,
		sink:         sink,
		grouper:      NewPostGrouper(root, sink, newCaptionRenderer(settings.CaptionFormat)),
		assets:       assets,
	}
}

// Extract processes elements in document order. Per-element failures are
// logged to the diagnostics channel and the walk continues.
func (fe *FeedExtractor) Extract(elements []Element) ExtractionSummary {
	var summary ExtractionSummary

	for _, el := range elements {
		if err := fe.process(classify(el), &summary); err != nil {
			fe.sink.Diagnostic("%v", err)
			summary.FailedElements++
		}
	}

	return summary
}

func (fe *FeedExtractor) process(ce ClassifiedElement, summary *ExtractionSummary) error {
	switch e := ce.(type) {
	case Timestamp:
		group, err := fe.grouper.OnTimestamp(e.Raw)
		if err != nil {
			return fmt.Errorf("skipping post: %w", err)
		}
		debugLog("post %s starts at %q", group.Key, group.Timestamp)
		summary.Posts++
		return nil

	case Caption:
		added, err := fe.grouper.OnCaption(e)
		if err != nil {
			return err
		}
		if added {
			summary.Captions++
		}
		return nil

	case MediaContainer:
		group, ok := fe.grouper.Current()
		if !ok {
			return nil
		}
		found, err := fe.processVideo(group, e)
		if found {
			summary.Videos++
		}
		return err

	case ImageMarker:
		group, ok := fe.grouper.Current()
		if !ok {
			return nil
		}
		found, err := fe.processImage(group, e)
		if found {
			summary.Images++
		}
		return err

	case Irrelevant:
		return nil

	default:
		return fmt.Errorf("unhandled element kind %T", ce)
	}
}

func (fe *FeedExtractor) processVideo(group *PostGroup, e MediaContainer) (bool, error) {
	video, err := fe.resolver.ResolveVideo(e.Attrs)
	if err != nil {
		return false, fmt.Errorf("skipping video in post %s: %w", group.Key, err)
	}

	if video.ID != "" {
		if err := fe.sink.Record(group, "CLICKABLE VIDEO URL: "+fe.watchBaseURL+video.ID); err != nil {
			return false, err
		}
	}

	if video.URL == "" {
		return false, nil
	}

	if err := fe.sink.Record(group, "VIDEO URL: "+video.URL); err != nil {
		return true, err
	}
	if err := fe.sink.VideoLedger(video.URL); err != nil {
		return true, err
	}
	fe.download(group, video.URL)
	return true, nil
}

func (fe *FeedExtractor) processImage(group *PostGroup, e ImageMarker) (bool, error) {
	image, ok := fe.resolver.ResolveImage(e.Attrs)
	if !ok {
		return false, nil
	}

	if err := fe.sink.ImageLedger(image.URL); err != nil {
		return true, err
	}
	if err := fe.sink.Record(group, "IMAGE URL: "+image.URL); err != nil {
		return true, err
	}
	fe.download(group, image.URL)
	return true, nil
}

// download enqueues url for the group folder when it names a known media file
func (fe *FeedExtractor) download(group *PostGroup, url string) {
	if fe.assets == nil {
		return
	}

	name, ok := deriveFileName(url)
	if !ok {
		debugLog("not downloading %s: unknown file type", url)
		return
	}

	fe.assets.Enqueue(DownloadTask{
		SourceURL:   url,
		Destination: filepath.Join(group.Folder, name),
	})
}

// Run extracts the document at inputPath into the configured output
// directory and waits for all downloads to finish. Only a failure to prepare
// the output directory or read the document is returned as an error.
func Run(ctx context.Context, inputPath string, settings *Settings) (*ExtractionSummary, error) {
	sink, err := NewFileSink(settings.OutputDirectory)
	if err != nil {
		return nil, err
	}

	elements, err := loadDocument(inputPath)
	if err != nil {
		sink.Diagnostic("reading input: %v", err)
		return nil, err
	}
	log.Printf("Parsed %d elements from %s", len(elements), inputPath)

	var (
		assets     AssetSink
		downloader *Downloader
	)
	if settings.Download.Enabled {
		fetcher := NewAssetFetcher(settings.Download.UserAgent)
		timeout := time.Duration(settings.Download.TimeoutSeconds) * time.Second
		downloader = NewDownloader(ctx, fetcher, sink, settings.Download.Workers, timeout, settings.Download.Overwrite)
		assets = downloader
	}

	extractor := NewFeedExtractor(settings.OutputDirectory, settings, sink, assets)
	summary := extractor.Extract(elements)

	if downloader != nil {
		log.Printf("Waiting for downloads...")
		for _, result := range downloader.Wait() {
			switch result.Status {
			case StatusSuccess:
				summary.DownloadsOK++
			case StatusSkipped:
				summary.DownloadsSkipped++
			case StatusError:
				summary.DownloadsFailed++
			}
		}
	}

	return &summary, nil
}
