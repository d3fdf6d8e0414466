/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package release looks up published pyright versions on GitHub.
package release

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	gh "github.com/google/go-github/v75/github"
)

const (
	pyrightOwner = "microsoft"
	pyrightRepo  = "pyright"
)

// Client queries the GitHub releases API.
type Client struct {
	gh *gh.Client
}

// Option configures a Client.
type Option func(*Client) error

// WithToken authenticates requests, raising the API rate limit.
func WithToken(token string) Option {
	return func(c *Client) error {
		if token != "" {
			c.gh = c.gh.WithAuthToken(token)
		}
		return nil
	}
}

// WithBaseURL points the client at another API endpoint (GHES or tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("parsing base URL: %w", err)
		}
		c.gh.BaseURL = u
		return nil
	}
}

// NewClient creates a release client for microsoft/pyright.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		gh: gh.NewClient(&http.Client{Timeout: 30 * time.Second}),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Latest returns the version of the most recent non-prerelease release.
func (c *Client) Latest(ctx context.Context) (*semver.Version, error) {
	rel, _, err := c.gh.Repositories.GetLatestRelease(ctx, pyrightOwner, pyrightRepo)
	if err != nil {
		return nil, fmt.Errorf("fetching latest %s/%s release: %w", pyrightOwner, pyrightRepo, err)
	}

	tag := rel.GetTagName()
	v, err := semver.NewVersion(tag)
	if err != nil {
		return nil, fmt.Errorf("parsing release tag %q: %w", tag, err)
	}
	return v, nil
}
