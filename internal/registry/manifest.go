package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/go-containerregistry/pkg/v1/remote"
	gocache "github.com/patrickmn/go-cache"

	"github.com/djmattyg007/docker-registry-tui/internal/logging/events"
)

// RawManifest fetches the manifest a tag points at and returns it
// pretty-printed with two-space indentation. Results are memoized per
// repository:tag; the registry gives no invalidation signal, so a cached
// manifest may be stale relative to a re-pushed tag.
func (c *Client) RawManifest(ctx context.Context, repo Repository, tag string) (string, error) {
	key := repo.Path + ":" + tag
	if cached, ok := c.manifests.Get(key); ok {
		return cached.(string), nil
	}

	ref, err := c.repoRef(repo)
	if err != nil {
		return "", err
	}
	start := time.Now()
	desc, err := remote.Get(ref.Tag(tag), c.remoteOpts(ctx)...)
	events.Registry.Fetch("raw-manifest", key, 0, time.Since(start), err)
	if err != nil {
		return "", classify(err)
	}

	var raw []byte
	if desc.MediaType.IsIndex() {
		idx, err := desc.ImageIndex()
		if err != nil {
			return "", classify(err)
		}
		raw, err = idx.RawManifest()
		if err != nil {
			return "", classify(err)
		}
	} else {
		img, err := desc.Image()
		if err != nil {
			return "", classify(err)
		}
		raw, err = img.RawManifest()
		if err != nil {
			return "", classify(err)
		}
	}

	pretty, err := prettyJSON(raw)
	if err != nil {
		return "", err
	}
	c.manifests.Set(key, pretty, gocache.NoExpiration)
	return pretty, nil
}

func prettyJSON(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
