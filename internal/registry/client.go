// Package registry wraps go-containerregistry with the small synchronous
// surface the menu layer consumes: namespace/repository/tag listings and
// platform-image resolution.
package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	gocache "github.com/patrickmn/go-cache"

	"github.com/djmattyg007/docker-registry-tui/internal/logging/events"
)

// Config carries the connection settings read at startup.
type Config struct {
	// URL is the registry endpoint, with or without a scheme. An http
	// scheme implies Insecure.
	URL      string
	Username string
	Password string
	Insecure bool
}

// Client talks to a single registry. All calls are synchronous; the menu
// layer serializes them, so no internal locking is needed beyond the catalog
// snapshot.
type Client struct {
	host     string
	scheme   string
	registry name.Registry
	nameOpts []name.Option
	auth     authn.Authenticator
	httpc    *http.Client

	mu      sync.Mutex
	catalog []string

	// Pretty-printed manifests are memoized without expiry; staleness is an
	// accepted tradeoff for the whole browser.
	manifests *gocache.Cache
}

// New builds a client from configuration. The endpoint is validated but not
// contacted; the first listing call performs the initial catalog fetch.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, fmt.Errorf("registry URL is required")
	}
	scheme := "https"
	if strings.Contains(endpoint, "://") {
		parsed, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse registry URL: %w", err)
		}
		if parsed.Scheme == "http" {
			cfg.Insecure = true
		}
		endpoint = parsed.Host
	}
	if cfg.Insecure {
		scheme = "http"
	}

	nameOpts := []name.Option{name.WeakValidation}
	if cfg.Insecure {
		nameOpts = append(nameOpts, name.Insecure)
	}
	reg, err := name.NewRegistry(endpoint, nameOpts...)
	if err != nil {
		return nil, fmt.Errorf("parse registry host: %w", err)
	}

	var auth authn.Authenticator = authn.Anonymous
	if cfg.Username != "" || cfg.Password != "" {
		auth = &authn.Basic{Username: cfg.Username, Password: cfg.Password}
	}

	return &Client{
		host:      endpoint,
		scheme:    scheme,
		registry:  reg,
		nameOpts:  nameOpts,
		auth:      auth,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		manifests: gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// Host returns the registry host[:port].
func (c *Client) Host() string {
	return c.host
}

func (c *Client) remoteOpts(ctx context.Context) []remote.Option {
	return []remote.Option{
		remote.WithContext(ctx),
		remote.WithAuth(c.auth),
	}
}

func (c *Client) repoRef(repo Repository) (name.Repository, error) {
	ref, err := name.NewRepository(c.host+"/"+repo.Path, c.nameOpts...)
	if err != nil {
		return name.Repository{}, fmt.Errorf("parse repository %q: %w", repo.Path, err)
	}
	return ref, nil
}

func (c *Client) fetchCatalog(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.catalog != nil {
		return c.catalog, nil
	}
	start := time.Now()
	repos, err := remote.Catalog(ctx, c.registry, c.remoteOpts(ctx)...)
	events.Registry.Fetch("catalog", c.host, len(repos), time.Since(start), err)
	if err != nil {
		return nil, classify(err)
	}
	c.catalog = repos
	return c.catalog, nil
}

// Namespaces lists the distinct namespaces present in the catalog, sorted.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	catalog, err := c.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return namespacesOf(catalog), nil
}

// Repositories lists the repositories under a namespace, sorted by name.
func (c *Client) Repositories(ctx context.Context, namespace string) ([]Repository, error) {
	catalog, err := c.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return repositoriesOf(catalog, namespace), nil
}

// Tags lists the tags of a repository as reported by the registry.
func (c *Client) Tags(ctx context.Context, repo Repository) ([]string, error) {
	ref, err := c.repoRef(repo)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	tags, err := remote.List(ref, c.remoteOpts(ctx)...)
	events.Registry.Fetch("tags", repo.Path, len(tags), time.Since(start), err)
	if err != nil {
		return nil, classify(err)
	}
	return tags, nil
}

// PlatformImages resolves a tag to its per-platform images. Multi-platform
// indexes expand to one entry per manifest; single-platform manifests yield
// exactly one. Attestation manifests (platform "unknown/unknown") are
// skipped.
func (c *Client) PlatformImages(ctx context.Context, repo Repository, tag string) ([]PlatformImage, error) {
	ref, err := c.repoRef(repo)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	desc, err := remote.Get(ref.Tag(tag), c.remoteOpts(ctx)...)
	if err != nil {
		events.Registry.Fetch("manifest", repo.Path+":"+tag, 0, time.Since(start), err)
		return nil, classify(err)
	}

	var pimages []PlatformImage
	if desc.MediaType.IsIndex() {
		idx, err := desc.ImageIndex()
		if err != nil {
			return nil, classify(err)
		}
		manifest, err := idx.IndexManifest()
		if err != nil {
			return nil, classify(err)
		}
		for _, m := range manifest.Manifests {
			if skipPlatform(m.Platform) {
				continue
			}
			img, err := idx.Image(m.Digest)
			if err != nil {
				return nil, classify(err)
			}
			pimage, err := platformImageFrom(img, platformName(m.Platform))
			if err != nil {
				return nil, classify(err)
			}
			pimages = append(pimages, pimage)
		}
	} else {
		img, err := desc.Image()
		if err != nil {
			return nil, classify(err)
		}
		pimage, err := platformImageFrom(img, "")
		if err != nil {
			return nil, classify(err)
		}
		pimages = append(pimages, pimage)
	}
	events.Registry.Fetch("manifest", repo.Path+":"+tag, len(pimages), time.Since(start), nil)
	return pimages, nil
}

func platformImageFrom(img v1.Image, platform string) (PlatformImage, error) {
	manifest, err := img.Manifest()
	if err != nil {
		return PlatformImage{}, err
	}
	digest, err := img.Digest()
	if err != nil {
		return PlatformImage{}, err
	}
	config, err := img.ConfigFile()
	if err != nil {
		return PlatformImage{}, err
	}
	if platform == "" {
		platform = platformName(config.Platform())
	}
	layers := make([]Layer, 0, len(manifest.Layers))
	for _, layer := range manifest.Layers {
		layers = append(layers, Layer{Digest: layer.Digest.String(), Size: layer.Size})
	}
	history := make([]HistoryEntry, 0, len(config.History))
	for _, entry := range config.History {
		history = append(history, HistoryEntry{CreatedBy: entry.CreatedBy, EmptyLayer: entry.EmptyLayer})
	}
	return PlatformImage{
		Platform: platform,
		Digest:   digest.String(),
		Layers:   layers,
		History:  history,
	}, nil
}

func platformName(p *v1.Platform) string {
	if p == nil {
		return "unknown"
	}
	return p.String()
}

func skipPlatform(p *v1.Platform) bool {
	return p != nil && p.OS == "unknown" && p.Architecture == "unknown"
}

// Ping probes the registry base endpoint. Any HTTP response counts as
// reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.scheme+"://"+c.host+"/v2/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	resp.Body.Close()
	return nil
}
