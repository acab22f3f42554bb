package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// fetchTimeout bounds a single upstream media fetch.
const fetchTimeout = 10 * time.Second

// maxMediaBytes caps how much of an upstream response is buffered. Question
// attachments are small images and short audio clips.
const maxMediaBytes = 32 << 20

// Content is a fetched media payload ready to stream to the client.
type Content struct {
	Type string
	Data []byte
}

// Proxy fetches question attachments (image and audio URLs) on behalf of the
// browser. Google Drive share links do not serve raw bytes directly, so they
// are rewritten to the direct-view form before fetching.
type Proxy struct {
	client *http.Client
}

func NewProxy(client *http.Client) *Proxy {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Proxy{client: client}
}

// DriveViewURL rewrites a Google Drive share link ("/file/d/<id>/view" or
// "open?id=<id>") into the uc?export=view form that serves the file bytes.
// URLs that are not Drive links, or that already use an export form, are
// returned unchanged.
func DriveViewURL(raw string) string {
	if !strings.Contains(raw, "drive.google.com") || strings.Contains(raw, "uc?export=") {
		return raw
	}
	var fileID string
	if _, after, ok := strings.Cut(raw, "/d/"); ok {
		fileID, _, _ = strings.Cut(after, "/")
	} else if _, after, ok := strings.Cut(raw, "id="); ok {
		fileID, _, _ = strings.Cut(after, "&")
	}
	if fileID == "" {
		return raw
	}
	return "https://drive.google.com/uc?export=view&id=" + fileID
}

// Fetch downloads the media at rawURL and classifies its content type.
// Images pass their upstream type through; anything audio is served as
// audio/mpeg; everything else falls back to application/octet-stream.
func (p *Proxy) Fetch(ctx context.Context, rawURL string) (*Content, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DriveViewURL(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("build media request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch media: upstream returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMediaBytes))
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}

	return &Content{Type: classify(resp.Header.Get("Content-Type")), Data: data}, nil
}

func classify(contentType string) string {
	switch {
	case strings.Contains(contentType, "image"):
		return contentType
	case strings.Contains(contentType, "audio"):
		return "audio/mpeg"
	default:
		return "application/octet-stream"
	}
}
