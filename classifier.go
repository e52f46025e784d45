package main

import "golang.org/x/net/html/atom"

// classify determines the role of an element from its tag
func classify(el Element) ClassifiedElement {
	switch el.Tag() {
	case atom.Abbr:
		return Timestamp{Raw: el.Text()}
	case atom.P:
		return Caption{Raw: el.Text(), Source: el}
	case atom.Div:
		return MediaContainer{Attrs: el}
	case atom.I:
		return ImageMarker{Attrs: el}
	default:
		return Irrelevant{}
	}
}
