package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eventbuzzer/tripplanner/internal/domain"
)

// DefaultQRBaseURL is the QR rendering service the client talks to.
const DefaultQRBaseURL = "https://api.qrserver.com/v1"

// DefaultQRSize is the requested image size, "<width>x<height>".
const DefaultQRSize = "300x300"

// maxQRBytes caps how much of a QR response is read.
const maxQRBytes = 1 << 20

// QRClient builds and fetches QR code images from an external provider.
type QRClient struct {
	baseURL string
	size    string
	http    *http.Client
}

// NewQRClient returns a QRClient. Empty arguments fall back to the defaults;
// a nil httpClient gets a client with a 10 second timeout.
func NewQRClient(baseURL, size string, httpClient *http.Client) *QRClient {
	if baseURL == "" {
		baseURL = DefaultQRBaseURL
	}
	if size == "" {
		size = DefaultQRSize
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &QRClient{baseURL: strings.TrimRight(baseURL, "/"), size: size, http: httpClient}
}

// ImageURL returns the provider URL of a QR code encoding data.
func (c *QRClient) ImageURL(data string) string {
	q := url.Values{}
	q.Set("size", c.size)
	q.Set("data", data)
	return c.baseURL + "/create-qr-code/?" + q.Encode()
}

// Fetch downloads the QR image for data. Any transport failure or non-2xx
// answer is reported as domain.ErrExternalService; there is no retry.
func (c *QRClient) Fetch(ctx context.Context, data string) (domain.QRImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ImageURL(data), nil)
	if err != nil {
		return domain.QRImage{}, fmt.Errorf("export.QRClient.Fetch: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.QRImage{}, fmt.Errorf("export.QRClient.Fetch: %w: %v", domain.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.QRImage{}, fmt.Errorf("export.QRClient.Fetch: %w: status %d", domain.ErrExternalService, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxQRBytes))
	if err != nil {
		return domain.QRImage{}, fmt.Errorf("export.QRClient.Fetch: %w: %v", domain.ErrExternalService, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return domain.QRImage{ContentType: contentType, Data: body}, nil
}
