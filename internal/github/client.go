package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultBaseURL = "https://api.github.com"

// Client is a minimal GitHub REST client covering what the intent
// check needs: PR metadata and diff, file contents at a ref, linked
// issue discovery and comment posting.
type Client struct {
	baseURL string
	token   string
	repo    string // "owner/name"
	client  *http.Client
}

func NewClient(baseURL, token, repo string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		repo:    repo,
		client:  &http.Client{},
	}
}

type PullRequest struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Head   struct {
		SHA string `json:"sha"`
	} `json:"head"`
}

type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (c *Client) PullRequest(ctx context.Context, number int) (*PullRequest, error) {
	var pr PullRequest
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.baseURL, c.repo, number)
	if err := c.getJSON(ctx, url, "", &pr); err != nil {
		return nil, fmt.Errorf("failed to fetch pull request #%d: %w", number, err)
	}
	return &pr, nil
}

// Diff fetches the raw unified diff of a pull request.
func (c *Client) Diff(ctx context.Context, number int) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/pulls/%d", c.baseURL, c.repo, number)
	body, err := c.get(ctx, url, "application/vnd.github.v3.diff")
	if err != nil {
		return "", fmt.Errorf("failed to fetch diff for pull request #%d: %w", number, err)
	}
	return string(body), nil
}

func (c *Client) Issue(ctx context.Context, number int) (*Issue, error) {
	var issue Issue
	url := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, c.repo, number)
	if err := c.getJSON(ctx, url, "", &issue); err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d: %w", number, err)
	}
	return &issue, nil
}

type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// FileContent fetches the full content of a file at the given ref.
func (c *Client) FileContent(ctx context.Context, ref, path string) (string, error) {
	var contents contentsResponse
	url := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", c.baseURL, c.repo, path, ref)
	if err := c.getJSON(ctx, url, "", &contents); err != nil {
		return "", fmt.Errorf("failed to fetch content of %s at %s: %w", path, ref, err)
	}

	if contents.Encoding != "base64" {
		return contents.Content, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(contents.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("failed to decode content of %s: %w", path, err)
	}
	return string(decoded), nil
}

type timelineEvent struct {
	Event  string `json:"event"`
	Source struct {
		Issue struct {
			Number      int             `json:"number"`
			PullRequest json.RawMessage `json:"pull_request"`
		} `json:"issue"`
	} `json:"source"`
}

// LinkedIssue walks the pull request's timeline looking for a
// cross-referenced issue. Returns 0 when no linked issue exists.
func (c *Client) LinkedIssue(ctx context.Context, prNumber int) (int, error) {
	var events []timelineEvent
	url := fmt.Sprintf("%s/repos/%s/issues/%d/timeline?per_page=100", c.baseURL, c.repo, prNumber)
	if err := c.getJSON(ctx, url, "application/vnd.github.mockingbird-preview+json", &events); err != nil {
		return 0, fmt.Errorf("failed to fetch timeline for pull request #%d: %w", prNumber, err)
	}

	for _, event := range events {
		if event.Event != "cross-referenced" {
			continue
		}
		// Pull requests carry a pull_request key in the issue payload;
		// plain issues don't.
		if event.Source.Issue.PullRequest != nil {
			continue
		}
		if event.Source.Issue.Number != 0 {
			return event.Source.Issue.Number, nil
		}
	}

	return 0, nil
}

// PostComment adds a comment to an issue or pull request.
func (c *Client) PostComment(ctx context.Context, number int, body string) error {
	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return fmt.Errorf("failed to marshal comment: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", c.baseURL, c.repo, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post comment on #%d: %w", number, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("comment request failed with status: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req, accept)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) getJSON(ctx context.Context, url, accept string, out any) error {
	body, err := c.get(ctx, url, accept)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request, accept string) {
	if accept == "" {
		accept = "application/vnd.github+json"
	}
	req.Header.Set("Accept", accept)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
