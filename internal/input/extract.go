// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package input

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/russross/blackfriday/v2"
)

// extractPlainText reads a .txt file as-is.
func extractPlainText(path string) (*Extracted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapReadError(path, err)
	}
	text := string(data)
	return &Extracted{Text: text, HeaderSource: text, Metadata: fileMetadata(path)}, nil
}

// extractMarkdown renders the markdown to HTML and strips the tags,
// keeping block boundaries as line breaks. The raw markdown is kept as
// the header-detection source.
func extractMarkdown(path string) (*Extracted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapReadError(path, err)
	}

	rendered := blackfriday.Run(data)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rendered))
	if err != nil {
		return nil, fmt.Errorf("parsing rendered markdown from %s: %w", path, err)
	}

	var b strings.Builder
	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		block := strings.TrimSpace(sel.Text())
		if block == "" {
			return
		}
		b.WriteString(block)
		b.WriteString("\n\n")
	})
	text := strings.TrimSpace(b.String())
	if text == "" {
		// No block elements (bare inline markdown); fall back to the
		// whole document text.
		text = strings.TrimSpace(doc.Text())
	}

	return &Extracted{Text: text, HeaderSource: string(data), Metadata: fileMetadata(path)}, nil
}

// extractPDF pulls the text of every page and concatenates page texts
// with blank lines between them.
func extractPDF(path string) (*Extracted, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, wrapReadError(path, err)
		}
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []string
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extracting page %d of %s: %w", i, path, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	text := strings.Join(pages, "\n\n")
	metadata := fileMetadata(path)
	metadata["page_count"] = total
	return &Extracted{Text: text, HeaderSource: text, Metadata: metadata}, nil
}

// PDFPageCount reports the number of pages in a PDF without extracting
// its text.
func PDFPageCount(path string) (int, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, wrapReadError(path, err)
		}
		return 0, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()
	return reader.NumPage(), nil
}
