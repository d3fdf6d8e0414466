package main

import (
	"context"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/NissesSenap/pyright-action/pkg/release"
)

// lazyRelease defers building the GitHub client until a latest-version
// lookup is actually needed, so pinned versions never touch the network.
type lazyRelease struct {
	token  string
	apiURL string

	once   sync.Once
	client *release.Client
	err    error
}

func (l *lazyRelease) Latest(ctx context.Context) (*semver.Version, error) {
	l.once.Do(func() {
		opts := []release.Option{release.WithToken(l.token)}
		if l.apiURL != "" {
			opts = append(opts, release.WithBaseURL(l.apiURL))
		}
		l.client, l.err = release.NewClient(opts...)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.client.Latest(ctx)
}
