// Package github creates releases through the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"resty.dev/v3"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// ErrMissingToken is returned when no API token is configured.
var ErrMissingToken = errors.New("missing GitHub token")

// Release is the payload of POST /repos/{owner}/{repo}/releases.
type Release struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name"`
	Body            string `json:"body"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

// ReleaseResponse holds the fields of the created release we report back.
type ReleaseResponse struct {
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
	Draft   bool   `json:"draft"`
}

// APIError is returned for non-2xx responses.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GitHub API returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API returned %d", e.StatusCode)
}

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Code    string `json:"code"`
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (b *errorBody) String() string {
	parts := []string{b.Message}
	for _, e := range b.Errors {
		switch {
		case e.Message != "":
			parts = append(parts, e.Message)
		case e.Field != "":
			parts = append(parts, e.Field+" "+e.Code)
		}
	}
	return strings.Join(parts, "; ")
}

// Client talks to one GitHub API endpoint.
type Client struct {
	rc    *resty.Client
	token string
}

// New returns a Client for baseURL authenticating with token. Requests are
// not retried.
func New(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/vnd.github+json").
		SetHeader("X-GitHub-Api-Version", "2022-11-28")
	return &Client{rc: rc, token: token}
}

// Close releases the underlying HTTP client resources.
func (c *Client) Close() error {
	return c.rc.Close()
}

// CreateRelease publishes rel on owner/repo.
func (c *Client) CreateRelease(ctx context.Context, owner, repo string, rel Release) (*ReleaseResponse, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}
	var out ReleaseResponse
	var apiErr errorBody
	res, err := c.rc.R().
		SetContext(ctx).
		SetAuthScheme("token").
		SetAuthToken(c.token).
		SetBody(rel).
		SetResult(&out).
		SetError(&apiErr).
		Post(fmt.Sprintf("/repos/%s/%s/releases", url.PathEscape(owner), url.PathEscape(repo)))
	if err != nil {
		return nil, fmt.Errorf("create release: %w", err)
	}
	if !res.IsSuccess() {
		return nil, &APIError{StatusCode: res.StatusCode(), Message: apiErr.String()}
	}
	return &out, nil
}
