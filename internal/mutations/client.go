// Package mutations is the HTTP client for the document mutation service.
package mutations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/pdf-editor/internal/overlay"
	"github.com/JaimeStill/pdf-editor/internal/reconcile"
)

var (
	ErrRemote   = errors.New("mutation service request failed")
	ErrNotFound = errors.New("not found on mutation service")
)

// Config addresses the service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements reconcile.Service over HTTP.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

var _ reconcile.Service = (*Client)(nil)

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}

	return &Client{
		base:   base,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("system", "mutations"),
	}, nil
}

func (c *Client) Upload(ctx context.Context, filename string, data []byte) (*reconcile.Document, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := c.request(ctx, http.MethodPost, []string{"documents"}, nil, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var doc reconcile.Document
	if err := c.send(req, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Document(ctx context.Context, documentID string) (*reconcile.Document, error) {
	var doc reconcile.Document
	if err := c.call(ctx, http.MethodGet, docPath(documentID), nil, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) ListRegions(ctx context.Context, documentID string, page *int) ([]overlay.Region, error) {
	q := url.Values{}
	if page != nil {
		q.Set("page", strconv.Itoa(*page))
	}

	var regions []overlay.Region
	if err := c.call(ctx, http.MethodGet, docPath(documentID, "regions"), q, nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (c *Client) SearchRegions(ctx context.Context, documentID, query string) ([]overlay.Region, error) {
	var regions []overlay.Region
	q := url.Values{"q": {query}}
	if err := c.call(ctx, http.MethodGet, docPath(documentID, "regions"), q, nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

func (c *Client) ReplaceContent(ctx context.Context, documentID string, id overlay.ID, text string) error {
	body := map[string]string{"text": text}
	return c.call(ctx, http.MethodPut, docPath(documentID, "regions", string(id), "content"), nil, body, nil)
}

func (c *Client) SetProperty(ctx context.Context, documentID string, id overlay.ID, change overlay.Change) error {
	body := map[string]string{
		"property": string(change.Property()),
		"value":    change.Value(),
	}
	return c.call(ctx, http.MethodPut, docPath(documentID, "regions", string(id), "properties"), nil, body, nil)
}

type insertRequest struct {
	Page        int     `json:"page"`
	Text        string  `json:"text"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	FontSize    float64 `json:"font_size,omitempty"`
	LineSpacing float64 `json:"line_spacing,omitempty"`
	Alignment   string  `json:"alignment,omitempty"`
}

func (c *Client) InsertRegion(ctx context.Context, documentID string, ins reconcile.Insertion) (*overlay.Region, error) {
	body := insertRequest{
		Page:        ins.Page,
		Text:        ins.Text,
		X:           ins.Point.X,
		Y:           ins.Point.Y,
		FontSize:    ins.Attributes.FontSize,
		LineSpacing: float64(ins.Attributes.LineSpacing),
		Alignment:   string(ins.Attributes.Alignment),
	}

	var r overlay.Region
	if err := c.call(ctx, http.MethodPost, docPath(documentID, "regions"), nil, body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteRegion(ctx context.Context, documentID string, id overlay.ID) error {
	return c.call(ctx, http.MethodDelete, docPath(documentID, "regions", string(id)), nil, nil, nil)
}

func (c *Client) RotatePage(ctx context.Context, documentID string, page, degrees int) error {
	body := map[string]int{"degrees": degrees}
	return c.call(ctx, http.MethodPost, docPath(documentID, "pages", strconv.Itoa(page), "rotate"), nil, body, nil)
}

func (c *Client) MovePage(ctx context.Context, documentID string, from, to int) error {
	body := map[string]int{"to": to}
	return c.call(ctx, http.MethodPost, docPath(documentID, "pages", strconv.Itoa(from), "move"), nil, body, nil)
}

func (c *Client) Fonts(ctx context.Context, documentID string, page *int) ([]reconcile.Font, error) {
	q := url.Values{}
	if page != nil {
		q.Set("page", strconv.Itoa(*page))
	}

	var fonts []reconcile.Font
	if err := c.call(ctx, http.MethodGet, docPath(documentID, "fonts"), q, nil, &fonts); err != nil {
		return nil, err
	}
	return fonts, nil
}

func (c *Client) Export(ctx context.Context, documentID string) ([]byte, error) {
	req, err := c.request(ctx, http.MethodGet, docPath(documentID, "export"), nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

func (c *Client) call(ctx context.Context, method string, path []string, q url.Values, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(data)
	}

	req, err := c.request(ctx, method, path, q, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) request(ctx context.Context, method string, path []string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.base.JoinPath(path...)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return http.NewRequestWithContext(ctx, method, u.String(), body)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrRemote, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemote, err)
	}

	c.logger.Debug("request",
		"method", req.Method,
		"uri", req.URL.RequestURI(),
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	var payload struct {
		Error string `json:"error"`
	}
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return nil, fmt.Errorf("%w: %s (%d)", ErrRemote, msg, resp.StatusCode)
}

func docPath(id string, parts ...string) []string {
	return append([]string{"documents", id}, parts...)
}
