// Package subdl is a client for the SubDL subtitle catalog: search plus
// the three-step upload flow (session id, file upload, metadata submit).
package subdl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSearchURL = "https://api.subdl.com/api/v1/subtitles"
	defaultUploadURL = "https://api3.subdl.com/user"
)

// Client talks to the SubDL API. Search uses the api_key query parameter;
// uploads use the Bearer token.
type Client struct {
	searchKey   string
	uploadToken string
	searchURL   string
	uploadURL   string
	httpClient  *http.Client
	log         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSearchURL sets a custom search endpoint (for testing).
func WithSearchURL(u string) Option {
	return func(c *Client) { c.searchURL = u }
}

// WithUploadURL sets a custom upload base URL (for testing).
func WithUploadURL(u string) Option {
	return func(c *Client) { c.uploadURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log.With("component", "subdl") }
}

// New creates a SubDL client.
func New(searchKey, uploadToken string, opts ...Option) *Client {
	c := &Client{
		searchKey:   searchKey,
		uploadToken: uploadToken,
		searchURL:   defaultSearchURL,
		uploadURL:   defaultUploadURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns existing subtitle entries for the given content,
// requesting release info alongside each entry.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Subtitle, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("api_key", c.searchKey)
	params.Set("tmdb_id", strconv.FormatInt(q.TMDBID, 10))
	params.Set("type", q.Type)
	params.Set("languages", q.Languages)
	params.Set("subs_per_page", "30")
	params.Set("releases", "1")
	if q.Type == "tv" {
		params.Set("season_number", strconv.Itoa(q.Season))
		params.Set("episode_number", strconv.Itoa(q.Episode))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search returned %s", ErrUnavailable, resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	// status=false with a 200 covers "no results" as well as soft errors;
	// both leave nothing to compare against.
	if !sr.Status {
		if c.log != nil {
			c.log.Debug("search returned no entries", "tmdb_id", q.TMDBID, "error", sr.Error)
		}
		return nil, nil
	}

	if c.log != nil {
		c.log.Debug("search completed", "tmdb_id", q.TMDBID, "type", q.Type,
			"entries", len(sr.Subtitles), "duration_ms", time.Since(start).Milliseconds())
	}
	return sr.Subtitles, nil
}

// Upload performs the three-step upload: acquire a session id, upload the
// file, then submit the metadata. A 401 on any step returns
// ErrUnauthorized; any other refusal returns ErrRejected.
func (c *Client) Upload(ctx context.Context, req UploadRequest) error {
	nid, err := c.getNID(ctx)
	if err != nil {
		return err
	}

	fileNID, err := c.uploadFile(ctx, nid, req.FilePath)
	if err != nil {
		return err
	}

	if err := c.complete(ctx, nid, fileNID, req); err != nil {
		return err
	}

	if c.log != nil {
		c.log.Info("upload submitted for review", "name", req.Name, "file", filepath.Base(req.FilePath))
	}
	return nil
}

// getNID acquires a unique session id for the upload.
func (c *Client) getNID(ctx context.Context) (string, error) {
	resp, err := c.doUpload(ctx, http.MethodGet, "/getNId", "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkUploadStatus(resp); err != nil {
		return "", fmt.Errorf("get session id: %w", err)
	}

	var nr nIDResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return "", fmt.Errorf("decode session response: %w", err)
	}
	if !nr.OK || nr.NID == "" {
		return "", fmt.Errorf("get session id: %w", ErrRejected)
	}
	return nr.NID, nil
}

// uploadFile sends the subtitle file itself and returns its file id.
func (c *Client) uploadFile(ctx context.Context, nid, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open subtitle: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("subtitle", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("read subtitle: %w", err)
	}
	if err := mw.WriteField("n_id", nid); err != nil {
		return "", fmt.Errorf("write form field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	resp, err := c.doUpload(ctx, http.MethodPost, "/uploadSingleSubtitle", mw.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkUploadStatus(resp); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	var fr fileUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return "", fmt.Errorf("decode file response: %w", err)
	}
	if !fr.OK || fr.File.FileNID == "" {
		return "", fmt.Errorf("upload file: %w", ErrRejected)
	}
	return fr.File.FileNID, nil
}

// complete submits the metadata that finalizes the upload.
func (c *Client) complete(ctx context.Context, nid, fileNID string, req UploadRequest) error {
	fileIDs, err := json.Marshal([]string{fileNID})
	if err != nil {
		return fmt.Errorf("marshal file ids: %w", err)
	}
	releases, err := json.Marshal([]string{strings.TrimSuffix(filepath.Base(req.FilePath), ".srt")})
	if err != nil {
		return fmt.Errorf("marshal releases: %w", err)
	}

	form := url.Values{}
	form.Set("n_id", nid)
	form.Set("file_n_ids", string(fileIDs))
	form.Set("type", req.Type)
	form.Set("tmdb_id", strconv.FormatInt(req.TMDBID, 10))
	form.Set("imdb_id", req.IMDBID)
	form.Set("name", req.Name)
	form.Set("lang", strings.ToUpper(req.Lang))
	form.Set("quality", "web")
	form.Set("production_type", "0")
	form.Set("releases", string(releases))
	form.Set("framerate", "0")
	form.Set("comment", "Uploaded via subarr")
	form.Set("season", strconv.Itoa(req.Season))
	form.Set("ef", strconv.Itoa(req.Episode))
	form.Set("ee", strconv.Itoa(req.Episode))
	form.Set("hi", strconv.FormatBool(req.HearingImpaired))
	form.Set("is_full_season", "false")

	resp, err := c.doUpload(ctx, http.MethodPost, "/uploadSubtitle",
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkUploadStatus(resp); err != nil {
		return fmt.Errorf("complete upload: %w", err)
	}

	var cr completeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return fmt.Errorf("decode complete response: %w", err)
	}
	if !cr.Status {
		return fmt.Errorf("complete upload: %w", ErrRejected)
	}
	return nil
}

// doUpload performs one authenticated request against the upload API.
func (c *Client) doUpload(ctx context.Context, method, endpoint, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.uploadURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.uploadToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// checkUploadStatus maps HTTP status codes to sentinel errors.
func (c *Client) checkUploadStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	default:
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}
}
