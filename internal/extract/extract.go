package extract

import (
	"context"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/quantmind-br/githarvest-go/internal/domain"
	"github.com/quantmind-br/githarvest-go/internal/utils"
)

// Extractor is the default ContentExtractor: it fetches the raw content
// behind an API URL and derives title/content/mimetype record fields. HTML
// payloads go through readability and markdown conversion; everything else
// is treated as plain text.
type Extractor struct {
	fetcher domain.Fetcher
	log     *utils.Logger
}

// NewExtractor creates a new Extractor
func NewExtractor(fetcher domain.Fetcher, log *utils.Logger) *Extractor {
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	return &Extractor{
		fetcher: fetcher,
		log:     log.WithComponent("extract"),
	}
}

// Extract fetches the content at apiURL and returns its record fields.
func (e *Extractor) Extract(ctx context.Context, apiURL string) (map[string]any, error) {
	resp, err := e.fetcher.Get(ctx, apiURL)
	if err != nil {
		return nil, err
	}

	body, err := ConvertToUTF8(resp.Body)
	if err != nil {
		body = resp.Body
	}

	if isHTML(resp.ContentType, body) {
		title, content := e.fromHTML(string(body), apiURL)
		return map[string]any{
			domain.FieldTitle:    title,
			domain.FieldContent:  content,
			domain.FieldMimetype: "text/html",
		}, nil
	}

	mimetype := resp.ContentType
	if mimetype == "" {
		mimetype = "text/plain"
	}
	return map[string]any{
		domain.FieldContent:  string(body),
		domain.FieldMimetype: mimetype,
	}, nil
}

// fromHTML extracts the main content of an HTML payload and converts it to
// markdown. Readability failures fall back to the raw document text.
func (e *Extractor) fromHTML(html, sourceURL string) (title, content string) {
	parsed, _ := url.Parse(sourceURL)

	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		e.log.Debug().Err(err).Str("url", sourceURL).Msg("readability failed; using raw document")
		return titleFromDocument(html), textFromDocument(html)
	}

	title = article.Title
	if title == "" {
		title = titleFromDocument(html)
	}

	markdown, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil {
		return title, article.TextContent
	}
	return title, strings.TrimSpace(markdown)
}

// titleFromDocument pulls the <title> element out of an HTML document.
func titleFromDocument(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// textFromDocument returns the visible text of an HTML document.
func textFromDocument(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

// isHTML decides whether the payload should go through HTML extraction.
func isHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "html") {
		return true
	}
	head := strings.ToLower(string(body[:min(256, len(body))]))
	return strings.Contains(head, "<!doctype html") || strings.Contains(head, "<html")
}
