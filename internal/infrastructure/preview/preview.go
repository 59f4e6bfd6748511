package preview

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"CovidDash/internal/ports"
)

const maxHeadings = 5

// Preview is the text a terminal can show in place of an embedded document.
type Preview struct {
	URL      string
	Title    string
	Headings []string
	Summary  string
}

// Fetcher downloads embedded report documents and extracts a text preview.
type Fetcher struct {
	client    *http.Client
	resolver  ports.Resolver
	userAgent string
	maxText   int
}

// NewFetcher wires an HTTP client; refs are resolved against resolver when
// one is given. maxText defaults to 280 runes.
func NewFetcher(client *http.Client, resolver ports.Resolver, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Fetcher{client: client, resolver: resolver, userAgent: userAgent, maxText: 280}
}

// Fetch loads ref and returns its preview.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (Preview, error) {
	target, err := f.resolve(ref)
	if err != nil {
		return Preview{}, err
	}

	doc, err := f.fetchDocument(ctx, target)
	if err != nil {
		return Preview{}, err
	}

	p := extract(doc, f.maxText)
	p.URL = target
	return p, nil
}

func (f *Fetcher) resolve(ref string) (string, error) {
	if f.resolver == nil {
		if _, err := url.Parse(ref); err != nil {
			return "", fmt.Errorf("invalid document url %s: %w", ref, err)
		}
		return ref, nil
	}
	u, err := f.resolver.Resolve(ref)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (f *Fetcher) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extract(doc *goquery.Document, maxText int) Preview {
	var p Preview

	p.Title = collapse(doc.Find("title").First().Text())

	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := collapse(s.Text()); text != "" {
			p.Headings = append(p.Headings, text)
		}
		return len(p.Headings) < maxHeadings
	})

	if p.Title == "" && len(p.Headings) > 0 {
		p.Title = p.Headings[0]
	}

	body := doc.Find("body").Clone()
	body.Find("script, style, noscript").Remove()
	p.Summary = truncate(collapse(body.Text()), maxText)

	return p
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
