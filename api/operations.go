package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/deAdler-alt/Skill-Sense/model"
)

// Paginated mirrors the backend's generic page envelope.
type Paginated struct {
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Items []model.Profile `json:"items"`
}

// SearchResponse is the /search payload: an LLM-written summary plus the
// ranked profile page.
type SearchResponse struct {
	Summary  string    `json:"summary"`
	Profiles Paginated `json:"profiles"`
}

// Login exchanges credentials for a bearer token and stores it in the
// session. The backend expects a form-encoded body.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return fmt.Errorf("empty access token in response")
	}
	if err := c.session.SetToken(body.AccessToken); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	c.log.Info("logged in", zap.String("username", username))
	return nil
}

// Search runs a natural-language candidate search and returns the summary
// together with the top matches.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	var out SearchResponse
	err := c.getJSON(ctx, "/search", map[string]string{
		"query": query,
		"skip":  "0",
		"limit": strconv.Itoa(c.searchLimit),
	}, &out)
	if err != nil {
		return nil, err
	}
	c.log.Info("search completed",
		zap.String("query", query),
		zap.Int("results", len(out.Profiles.Items)))
	return &out, nil
}

// ListProfiles fetches stored profiles filtered by search text. An empty
// search returns the unfiltered listing.
func (c *Client) ListProfiles(ctx context.Context, search string) ([]model.Profile, error) {
	var out Paginated
	err := c.getJSON(ctx, "/users", map[string]string{
		"search": search,
		"skip":   "0",
		"limit":  strconv.Itoa(c.listLimit),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Items, nil
}

// FetchCV downloads the raw résumé document of a profile.
func (c *Client) FetchCV(ctx context.Context, profileID int) ([]byte, error) {
	return c.getBytes(ctx, fmt.Sprintf("/cv/%d", profileID))
}

// UploadCV submits a résumé file for ingestion and returns the created
// profile.
func (c *Client) UploadCV(ctx context.Context, path string) (*model.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-cv", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var profile model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	c.log.Info("cv uploaded",
		zap.String("file", filepath.Base(path)),
		zap.Int("profile_id", profile.ID))
	return &profile, nil
}
