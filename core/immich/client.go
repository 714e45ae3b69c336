package immich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIKeyHeader carries the credential on every request.
const APIKeyHeader = "x-api-key"

// Client talks to the read-only part of the Immich API.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, which must already end with /api.
func NewClient(baseURL, apiKey string, cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
	}
	if cfg.ResponseHeaderTimeoutSeconds > 0 {
		transport.ResponseHeaderTimeout = time.Duration(cfg.ResponseHeaderTimeoutSeconds) * time.Second
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "immich-album-sync"
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: &http.Client{Transport: transport},
	}
}

// GetAlbum fetches album metadata together with every member asset.
func (c *Client) GetAlbum(ctx context.Context, albumID string) (*Album, error) {
	endpoint := fmt.Sprintf("%s/albums/%s?withoutAssets=false", c.baseURL, url.PathEscape(albumID))

	resp, err := c.get(ctx, endpoint, "application/json")
	if err != nil {
		return nil, &FetchError{AlbumID: albumID, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{AlbumID: albumID, Kind: KindStatus, StatusCode: resp.StatusCode, Err: statusError(resp)}
	}

	var album Album
	if err := json.NewDecoder(resp.Body).Decode(&album); err != nil {
		return nil, &FetchError{AlbumID: albumID, Kind: KindDecode, StatusCode: resp.StatusCode, Err: err}
	}
	if album.ID == "" {
		return nil, &FetchError{AlbumID: albumID, Kind: KindDecode, StatusCode: resp.StatusCode, Err: errors.New("response has no album id")}
	}

	return &album, nil
}

// DownloadOriginal streams the original binary of an asset into w.
// Nothing is written when the server answers with a non-success status.
func (c *Client) DownloadOriginal(ctx context.Context, assetID string, w io.Writer) (int64, error) {
	endpoint := fmt.Sprintf("%s/assets/%s/original", c.baseURL, url.PathEscape(assetID))

	resp, err := c.get(ctx, endpoint, "application/octet-stream")
	if err != nil {
		return 0, &DownloadError{AssetID: assetID, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &DownloadError{AssetID: assetID, Kind: KindStatus, StatusCode: resp.StatusCode, Err: statusError(resp)}
	}

	tw := &trackingWriter{w: w}
	n, err := io.Copy(tw, resp.Body)
	if err != nil {
		kind := KindNetwork
		if tw.err != nil {
			kind = KindIO
		}
		return n, &DownloadError{AssetID: assetID, Kind: kind, Err: err}
	}

	return n, nil
}

func (c *Client) get(ctx context.Context, endpoint, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", c.userAgent)

	return c.httpClient.Do(req)
}

// statusError builds an error from a failed response, keeping a short body excerpt.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	var apiErr struct {
		Message any `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != nil {
		return fmt.Errorf("%s: %v", resp.Status, apiErr.Message)
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return fmt.Errorf("%s: %s", resp.Status, msg)
	}
	return errors.New(resp.Status)
}

// trackingWriter remembers write failures so they can be told apart from read failures.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
