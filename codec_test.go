package main

import (
	"testing"
)

func TestDecodeImageURL(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"colon", `https\3a //example.com/a.jpg`, "https://example.com/a.jpg"},
		{"equals and ampersand", `https\3a //x.com/a.jpg?a\3d 1\26 b\3d 2`, "https://x.com/a.jpg?a=1&b=2"},
		{"no escapes", "https://x.com/a.jpg", "https://x.com/a.jpg"},
		{"empty", "", ""},
		{"escape without trailing space", `https\3a//x.com`, `https\3a//x.com`},
		{"uppercase is not an escape", `https\3A //x.com`, `https\3A //x.com`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decodeImageURL(tt.raw)
			if result != tt.expected {
				t.Errorf("decodeImageURL(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestDecodeImageURLIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"https://x.com/a.jpg",
		`https\3a //x.com/a.jpg`,
		`https\3a //scontent.xx.fbcdn.net/v/t1.0-9/123_n.jpg?_nc_cat\3d 1\26 oh\3d abc\26 oe\3d 5F`,
		`\26 \3d \3a `,
	}

	for _, in := range inputs {
		once := decodeImageURL(in)
		twice := decodeImageURL(once)
		if once != twice {
			t.Errorf("decodeImageURL not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestExtractImageURL(t *testing.T) {
	tests := []struct {
		name     string
		attrs    map[string]string
		expected string
	}{
		{
			name:     "no style attribute",
			attrs:    map[string]string{"class": "img"},
			expected: "",
		},
		{
			name:     "style without http",
			attrs:    map[string]string{"style": "width: 100px; height: 50px"},
			expected: "",
		},
		{
			name:     "background image",
			attrs:    map[string]string{"style": `background-image: url('https\3a //x.com/a.jpg');`},
			expected: `https\3a //x.com/a.jpg`,
		},
		{
			name:     "last https wins",
			attrs:    map[string]string{"style": `background: url('https://x.com/first.jpg'), url('https://x.com/second.jpg')`},
			expected: "https://x.com/second.jpg",
		},
		{
			name:     "http only",
			attrs:    map[string]string{"style": `background-image: url('http://x.com/a.jpg')`},
			expected: "",
		},
		{
			name:     "no closing quote",
			attrs:    map[string]string{"style": `background-image: url(https://x.com/a.jpg)`},
			expected: "https://x.com/a.jpg)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &fakeElement{attrs: tt.attrs}
			result := extractImageURL(el)
			if result != tt.expected {
				t.Errorf("extractImageURL() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDeriveFileName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		ok       bool
	}{
		{"image with query", "https://x.com/a/img123.jpg?x=1", "img123.jpg", true},
		{"video", "https://x.com/v.mp4", "v.mp4", true},
		{"gif", "https://x.com/file.gif", "", false},
		{"cdn image", "https://scontent.xx.fbcdn.net/v/t1.0-9/12345_678_n.jpg?_nc_cat=1&oh=abc", "12345_678_n.jpg", true},
		{"extension mid segment", "https://x.com/img.jpg_large", "img.jpg", true},
		{"no path", "https://x.com", "", false},
		{"bare extension", "https://x.com/.jpg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := deriveFileName(tt.url)
			if ok != tt.ok {
				t.Fatalf("deriveFileName(%q) ok = %v, want %v", tt.url, ok, tt.ok)
			}
			if result != tt.expected {
				t.Errorf("deriveFileName(%q) = %q, want %q", tt.url, result, tt.expected)
			}
		})
	}
}

func TestClassifyAssetExtension(t *testing.T) {
	tests := []struct {
		url      string
		expected AssetKind
	}{
		{"https://x.com/a/img123.jpg?x=1", AssetImage},
		{"https://x.com/v.mp4", AssetVideo},
		{"https://x.com/file.gif", AssetUnknown},
		{"https://x.com/jpg/file.png", AssetUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if result := classifyAssetExtension(tt.url); result != tt.expected {
				t.Errorf("classifyAssetExtension(%q) = %v, want %v", tt.url, result, tt.expected)
			}
		})
	}
}
