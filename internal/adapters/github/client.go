// Package github lists repository tags through the GitHub REST API.
package github

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

	"github.com/bunsenlabs/dockerbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	apiVersion        = "2022-11-28"
	tagsPerPage       = 100
	httpClientTimeout = 30 * time.Second
	maxErrorBodySize  = 64 << 10
)

// Config holds the parameters for a Client.
type Config struct {
	// BaseURL is the API root. Empty selects https://api.github.com.
	BaseURL string
	// Token is sent as a bearer credential on every request.
	Token string
	// HTTPClient overrides the default client.
	HTTPClient *http.Client
}

// Client implements ports.TagSource.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

type tagResponse struct {
	Name       string `json:"name"`
	TarballURL string `json:"tarball_url"`
}

// NewClient creates a Client. The base URL must use https unless it
// points at a loopback host.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "github api token is not set"), "env", domain.GitHubTokenEnv)
	}

	raw := strings.TrimRight(cfg.BaseURL, "/")
	if raw == "" {
		raw = domain.DefaultGitHubAPIURL
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(domain.ErrConfiguration, zerr.With(zerr.Wrap(err, "invalid github api url"), "url", raw))
	}
	if base.Scheme != "https" && (base.Scheme != "http" || !isLoopback(base.Hostname())) {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "github api url must use https"), "url", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: httpClientTimeout}
	}

	return &Client{
		baseURL:    base,
		token:      cfg.Token,
		httpClient: httpClient,
	}, nil
}

// Tags returns every tag of project ("owner/repo") across all pages.
func (c *Client) Tags(ctx context.Context, project string) ([]domain.Tag, error) {
	owner, repo, ok := strings.Cut(project, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, zerr.With(zerr.Wrap(domain.ErrTagSource, "project must be owner/repo"), "project", project)
	}

	next := fmt.Sprintf("%s/repos/%s/%s/tags?per_page=%d",
		c.baseURL.String(), url.PathEscape(owner), url.PathEscape(repo), tagsPerPage)

	tags := []domain.Tag{}
	for next != "" {
		page, link, err := c.getPage(ctx, next)
		if err != nil {
			return nil, errors.Join(domain.ErrTagSource, zerr.With(err, "project", project))
		}
		for _, t := range page {
			tags = append(tags, domain.Tag{Name: t.Name, TarballURL: t.TarballURL})
		}

		next, err = c.nextPage(link)
		if err != nil {
			return nil, errors.Join(domain.ErrTagSource, zerr.With(err, "project", project))
		}
	}
	return tags, nil
}

func (c *Client) getPage(ctx context.Context, pageURL string) ([]tagResponse, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, "", zerr.Wrap(err, "failed to create request")
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Accept", "application/vnd.github+json")
	request.Header.Set("X-GitHub-Api-Version", apiVersion)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "request failed"), "url", pageURL)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBodySize))
		return nil, "", parseAPIError(response.StatusCode, body)
	}

	var page []tagResponse
	if err := json.NewDecoder(response.Body).Decode(&page); err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "failed to decode tag list"), "url", pageURL)
	}
	return page, response.Header.Get("Link"), nil
}

// nextPage returns the rel="next" link, refusing to follow it to another host
// so the credential never leaves the configured endpoint.
func (c *Client) nextPage(link string) (string, error) {
	next := parseLinkNext(link)
	if next == "" {
		return "", nil
	}

	u, err := url.Parse(next)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "invalid pagination link"), "link", next)
	}
	if u.Scheme != c.baseURL.Scheme || u.Host != c.baseURL.Host {
		return "", zerr.With(zerr.New("pagination link points to another host"), "link", next)
	}
	return next, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
