package main

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const videoDescriptorAttr = "data-store"

// MediaResolver extracts media references from classified elements
type MediaResolver struct{}

// ResolveImage returns the decoded background image URL of an image marker
func (MediaResolver) ResolveImage(attrs Attributes) (ImageRef, bool) {
	raw := extractImageURL(attrs)
	if raw == "" {
		return ImageRef{}, false
	}
	return ImageRef{URL: decodeImageURL(raw)}, true
}

// ResolveVideo reads the video descriptor JSON embedded in the data-store
// attribute. Elements without the attribute resolve to an empty VideoRef.
func (MediaResolver) ResolveVideo(attrs Attributes) (VideoRef, error) {
	store, ok := attrs.Attr(videoDescriptorAttr)
	if !ok || store == "" {
		return VideoRef{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(store)))
	dec.UseNumber()

	var descriptor map[string]any
	if err := dec.Decode(&descriptor); err != nil {
		return VideoRef{}, fmt.Errorf("parsing %s: %w", videoDescriptorAttr, err)
	}

	return VideoRef{
		URL: descriptorString(descriptor["src"]),
		ID:  descriptorString(descriptor["videoID"]),
	}, nil
}

// descriptorString renders a descriptor value; numeric IDs keep every digit
func descriptorString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
