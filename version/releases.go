package version

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// ReleaseChecker asks the upstream repository for the newest version tag on
// a channel, used to tell the user an upgrade is available.
type ReleaseChecker struct {
	client *github.Client
	owner  string
	repo   string
}

// NewReleaseChecker creates a checker against the repository behind gitURL.
// token may be empty for anonymous access; set one to avoid rate limits on
// bots.
func NewReleaseChecker(token, gitURL string) (*ReleaseChecker, error) {
	owner, repo, err := ParseRepoFromURL(gitURL)
	if err != nil {
		return nil, fmt.Errorf("parse upstream URL: %w", err)
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &ReleaseChecker{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}, nil
}

// LatestForChannel returns the newest tag published on channel. Tags are
// listed newest-first by the API; the first one matching the channel's tag
// shape wins. Returns "" when the channel has no tags.
func (r *ReleaseChecker) LatestForChannel(ctx context.Context, channel Channel) (string, error) {
	opts := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := r.client.Repositories.ListTags(ctx, r.owner, r.repo, opts)
		if err != nil {
			return "", fmt.Errorf("list upstream tags: %w", err)
		}
		for _, tag := range tags {
			name := tag.GetName()
			parsed, ok := ParseGitTagVersion(name)
			if !ok {
				continue
			}
			switch channel {
			case ChannelStable:
				if parsed.IsStable() {
					return name, nil
				}
			case ChannelBeta, ChannelMaster:
				return name, nil
			}
		}
		if resp.NextPage == 0 {
			return "", nil
		}
		opts.Page = resp.NextPage
	}
}

var repoPattern = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)

// ParseRepoFromURL extracts owner and repository from an https or ssh
// GitHub remote URL.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	m := repoPattern.FindStringSubmatch(strings.TrimSpace(remoteURL))
	if m == nil {
		return "", "", fmt.Errorf("unrecognized repository URL %q", remoteURL)
	}
	return m[1], m[2], nil
}
