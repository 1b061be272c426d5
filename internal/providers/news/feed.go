// Package news reads league headlines from an RSS or Atom feed.
package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	domainnews "github.com/preston-bernstein/nfl-scores-service/internal/domain/news"
	"github.com/preston-bernstein/nfl-scores-service/internal/providers"
)

const (
	providerName       = "news"
	defaultHTTPTimeout = 6 * time.Second
	maxSummaryRunes    = 280
)

// HeadlineProvider fetches the latest headlines.
type HeadlineProvider interface {
	FetchHeadlines(ctx context.Context) ([]domainnews.Headline, error)
}

// Config controls the feed client.
type Config struct {
	FeedURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches and parses a single feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	parser     *gofeed.Parser
}

// NewClient builds a feed client.
func NewClient(cfg Config) *Client {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		feedURL:    strings.TrimSpace(cfg.FeedURL),
		httpClient: client,
		parser:     gofeed.NewParser(),
	}
}

// FetchHeadlines downloads the feed and returns its items in feed order.
// Items without a title or link are dropped.
func (c *Client) FetchHeadlines(ctx context.Context) ([]domainnews.Headline, error) {
	if c.feedURL == "" {
		return nil, providers.ErrProviderUnavailable
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("news: build request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, classify(ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", providers.ErrMalformedPayload, err)
	}
	return headlines(feed), nil
}

func headlines(feed *gofeed.Feed) []domainnews.Headline {
	out := make([]domainnews.Headline, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		h := domainnews.Headline{
			Title:   title,
			Link:    link,
			Summary: PlainText(item.Description),
		}
		switch {
		case item.PublishedParsed != nil:
			h.Published = item.PublishedParsed
		case item.UpdatedParsed != nil:
			h.Published = item.UpdatedParsed
		}
		out = append(out, h)
	}
	return out
}

// PlainText strips markup from a feed summary, collapses whitespace and
// truncates long summaries with an ellipsis.
func PlainText(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}
	text := fragment
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > maxSummaryRunes {
		text = strings.TrimSpace(string(runes[:maxSummaryRunes])) + "…"
	}
	return text
}

func classify(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", providers.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", providers.ErrTransport, err)
}
