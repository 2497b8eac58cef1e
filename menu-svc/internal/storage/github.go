package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"cafe-menu/menu-svc/internal/domain"

	"github.com/google/go-github/v66/github"
)

const defaultCommitMessage = "Update menu via admin panel"

type GitHubConfig struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
	// APIURL overrides https://api.github.com/, mostly for enterprise hosts and tests.
	APIURL     string
	HTTPClient *http.Client
}

// GitHubSource reads and writes the menu file through the GitHub contents
// API. The blob sha of the last read is the revision token for the next write.
type GitHubSource struct {
	Owner  string
	Repo   string
	Branch string
	Path   string

	client *github.Client

	mu  sync.Mutex
	sha string
}

func NewGitHubSource(cfg GitHubConfig) (*GitHubSource, error) {
	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	httpClient := *base
	httpClient.Transport = noCacheTransport{next: transport}

	client := github.NewClient(&httpClient)
	if cfg.APIURL != "" {
		apiURL := cfg.APIURL
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		u, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
		client.BaseURL = u
	}

	return &GitHubSource{
		Owner:  cfg.Owner,
		Repo:   cfg.Repo,
		Branch: cfg.Branch,
		Path:   cfg.Path,
		client: client,
	}, nil
}

func (s *GitHubSource) Fetch(ctx context.Context) (domain.Menu, error) {
	opts := &github.RepositoryContentGetOptions{Ref: s.Branch}
	file, _, resp, err := s.client.Repositories.GetContents(ctx, s.Owner, s.Repo, s.Path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrRemoteNotFound
		}
		return nil, fmt.Errorf("%w: fetch %s: %v", domain.ErrTransport, s.Path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrTransport, s.Path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("%w: decode content: %v", domain.ErrTransport, err)
	}
	menu, err := domain.DecodeMenu([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse remote menu: %v", domain.ErrTransport, err)
	}

	s.setSHA(file.GetSHA())
	return menu, nil
}

// Write commits the menu using the revision token from the last successful
// read or write. A conflict leaves the token as is so the caller must reload.
func (s *GitHubSource) Write(ctx context.Context, menu domain.Menu, credential string) error {
	if credential == "" {
		return domain.ErrUnauthorized
	}
	data, err := domain.EncodeMenu(menu)
	if err != nil {
		return err
	}

	message := defaultCommitMessage
	opts := &github.RepositoryContentFileOptions{
		Message: &message,
		Content: data,
	}
	if sha := s.currentSHA(); sha != "" {
		opts.SHA = &sha
	}
	if s.Branch != "" {
		branch := s.Branch
		opts.Branch = &branch
	}

	res, resp, err := s.client.WithAuthToken(credential).Repositories.UpdateFile(ctx, s.Owner, s.Repo, s.Path, opts)
	if err != nil {
		return classifyWriteError(resp, err)
	}
	if res != nil && res.Content != nil {
		s.setSHA(res.Content.GetSHA())
	}
	return nil
}

func (s *GitHubSource) ValidateCredential(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	_, _, err := s.client.WithAuthToken(token).Users.Get(ctx, "")
	return err == nil
}

// RawURL is the public raw link of the menu file.
func (s *GitHubSource) RawURL() string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", s.Owner, s.Repo, s.Branch, s.Path)
}

func (s *GitHubSource) currentSHA() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sha
}

func (s *GitHubSource) setSHA(sha string) {
	s.mu.Lock()
	s.sha = sha
	s.mu.Unlock()
}

func classifyWriteError(resp *github.Response, err error) error {
	if resp == nil {
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	case http.StatusConflict, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
}

type noCacheTransport struct {
	next http.RoundTripper
}

func (t noCacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Cache-Control", "no-cache")
	return t.next.RoundTrip(req)
}
