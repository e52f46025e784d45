package main

import (
	"net/url"
	"path"
	"strings"
)

const (
	extJPG = ".jpg"
	extMP4 = ".mp4"
)

// imageURLReplacer undoes the CSS escaping used in background-image styles.
// The three sequences are disjoint so replacement order does not matter.
var imageURLReplacer = strings.NewReplacer(
	`\3a `, ":",
	`\3d `, "=",
	`\26 `, "&",
)

// extractImageURL returns the URL quoted inside the element's style attribute.
// It takes the last "https" token and reads up to the next single quote, which
// is how the saved feed markup encodes background images. Styles carrying more
// than one URL, or using double quotes, are not parsed reliably.
func extractImageURL(attrs Attributes) string {
	style, ok := attrs.Attr("style")
	if !ok || !strings.Contains(style, "http") {
		return ""
	}

	start := strings.LastIndex(style, "https")
	if start < 0 {
		return ""
	}

	end := strings.IndexByte(style[start+1:], '\'')
	if end < 0 {
		return style[start:]
	}
	return style[start : start+1+end]
}

// decodeImageURL decodes the escape sequences of an obfuscated image URL
func decodeImageURL(raw string) string {
	return imageURLReplacer.Replace(raw)
}

// classifyAssetExtension reports whether url points at an image or a video
func classifyAssetExtension(rawURL string) AssetKind {
	base := lastPathSegment(rawURL)
	switch {
	case strings.Contains(base, extJPG):
		return AssetImage
	case strings.Contains(base, extMP4):
		return AssetVideo
	default:
		return AssetUnknown
	}
}

// deriveFileName returns the download file name for url, up to and including
// its extension. It returns false for URLs that should not be downloaded.
func deriveFileName(rawURL string) (string, bool) {
	base := lastPathSegment(rawURL)

	var ext string
	switch classifyAssetExtension(rawURL) {
	case AssetImage:
		ext = extJPG
	case AssetVideo:
		ext = extMP4
	default:
		return "", false
	}

	name := base[:strings.Index(base, ext)+len(ext)]
	if name == ext {
		return "", false
	}
	return name, true
}

// lastPathSegment returns the final segment of the URL path, ignoring the
// query string. Unparseable input falls back to the raw text after the last slash.
func lastPathSegment(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	if i := strings.LastIndexByte(rawURL, '/'); i >= 0 {
		return rawURL[i+1:]
	}
	return rawURL
}
