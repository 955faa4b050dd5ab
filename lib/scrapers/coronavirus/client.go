package coronavirus

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"covidtrack-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the unified information portal landing page.
const DefaultBaseURL = "https://coronavirus.bg"

// DocumentSource loads a URL into a queryable document tree. The
// production implementation is Client; tests substitute fixtures.
type DocumentSource interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	client := resty.New()
	client.SetTimeout(time.Second * 30)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/coronavirus/http")

	return &Client{http: client}
}

func (c *Client) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", res.Status())}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}
