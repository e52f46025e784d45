package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// domElement adapts a single goquery node to Element
type domElement struct {
	sel *goquery.Selection
}

func (e domElement) Tag() atom.Atom {
	if n := e.sel.Get(0); n != nil && n.Type == html.ElementNode {
		return n.DataAtom
	}
	return 0
}

func (e domElement) Text() string {
	return e.sel.Text()
}

func (e domElement) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// OuterHTML renders the element including its own tag
func (e domElement) OuterHTML() (string, error) {
	n := e.sel.Get(0)
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseDocument parses HTML and returns all elements in document order
func parseDocument(r io.Reader) ([]Element, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	all := doc.Find("*")
	elements := make([]Element, 0, all.Length())
	all.Each(func(i int, s *goquery.Selection) {
		elements = append(elements, domElement{sel: s})
	})

	return elements, nil
}

// loadDocument reads and parses the saved feed page at path
func loadDocument(path string) ([]Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer f.Close()

	return parseDocument(f)
}
