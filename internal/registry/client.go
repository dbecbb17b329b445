// Package registry fetches package documentation from GitHub.
package registry

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/cli/go-gh/v2/pkg/api"
)

// Client wraps the GitHub API for crimp's documentation needs.
type Client struct {
	rest *api.RESTClient
}

// PackageInfo holds repo-level metadata displayed next to the README.
type PackageInfo struct {
	Description string
	License     string
	Version     string // latest release tag, may be empty
}

// ReadmeResult contains a fetched README.
type ReadmeResult struct {
	Content string
	SHA     string
}

// NewClient creates a GitHub client using go-gh (automatic auth).
func NewClient() (*Client, error) {
	client, err := api.DefaultRESTClient()
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// NewClientWithToken creates a GitHub client with explicit token.
func NewClientWithToken(token string) (*Client, error) {
	client, err := api.NewRESTClient(api.ClientOptions{
		AuthToken: token,
	})
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// NewUnauthenticatedClient creates a GitHub client without authentication.
// This works for public repositories only and has lower rate limits (60/hour),
// which is fine for a 1-hour documentation cache.
func NewUnauthenticatedClient() (*Client, error) {
	client, err := api.NewRESTClient(api.ClientOptions{})
	if err != nil {
		return nil, err
	}
	return &Client{rest: client}, nil
}

// readmeResponse represents GitHub's readme API response.
type readmeResponse struct {
	Type     string `json:"type"`
	Encoding string `json:"encoding"`
	Name     string `json:"name"`
	Content  string `json:"content"`
	SHA      string `json:"sha"`
}

// FetchReadme fetches the repository README.
func (c *Client) FetchReadme(ctx context.Context, owner, repo string) (*ReadmeResult, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}

	endpoint := fmt.Sprintf("repos/%s/%s/readme", owner, repo)

	var response readmeResponse
	if err := c.rest.Get(endpoint, &response); err != nil {
		return nil, err
	}

	content, err := base64.StdEncoding.DecodeString(response.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode README content: %w", err)
	}

	return &ReadmeResult{
		Content: string(content),
		SHA:     response.SHA,
	}, nil
}

// FetchPackageInfo fetches repo description, license, and latest release tag.
// A missing latest release is not an error; Version is left empty.
func (c *Client) FetchPackageInfo(ctx context.Context, owner, repo string) (*PackageInfo, error) {
	endpoint := fmt.Sprintf("repos/%s/%s", owner, repo)

	var response struct {
		Description string `json:"description"`
		License     struct {
			SPDXID string `json:"spdx_id"`
		} `json:"license"`
	}
	if err := c.rest.Get(endpoint, &response); err != nil {
		return nil, err
	}

	info := &PackageInfo{
		Description: response.Description,
		License:     response.License.SPDXID,
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	relEndpoint := fmt.Sprintf("repos/%s/%s/releases/latest", owner, repo)
	if err := c.rest.Get(relEndpoint, &release); err != nil {
		if httpErr, ok := err.(*api.HTTPError); !ok || httpErr.StatusCode != http.StatusNotFound {
			return nil, err
		}
	} else {
		info.Version = release.TagName
	}

	return info, nil
}

// RepoExists checks if a repository exists and is accessible.
func (c *Client) RepoExists(ctx context.Context, owner, repo string) (bool, error) {
	endpoint := fmt.Sprintf("repos/%s/%s", owner, repo)

	var response struct {
		ID int `json:"id"`
	}

	err := c.rest.Get(endpoint, &response)
	if err != nil {
		if httpErr, ok := err.(*api.HTTPError); ok {
			if httpErr.StatusCode == http.StatusNotFound {
				return false, nil
			}
		}
		return false, err
	}

	return true, nil
}
