// Package menu builds the browsing hierarchy lazily: each node knows how to
// load its own entries from the registry, and loaded menus are retained until
// the cache reclaims them.
package menu

import (
	"context"

	"github.com/djmattyg007/docker-registry-tui/internal/registry"
)

// Kind identifies the level of the hierarchy a node belongs to.
type Kind int

const (
	KindNamespaces Kind = iota
	KindRepositories
	KindTags
	KindPlatforms
	KindLayers
)

// String returns the identifier used in trace events and pane lookups.
func (k Kind) String() string {
	switch k {
	case KindNamespaces:
		return "namespaces"
	case KindRepositories:
		return "repositories"
	case KindTags:
		return "tags"
	case KindPlatforms:
		return "platforms"
	case KindLayers:
		return "layers"
	}
	return "unknown"
}

// Client is the registry surface the loaders consume.
type Client interface {
	Namespaces(ctx context.Context) ([]string, error)
	Repositories(ctx context.Context, namespace string) ([]registry.Repository, error)
	Tags(ctx context.Context, repo registry.Repository) ([]string, error)
	PlatformImages(ctx context.Context, repo registry.Repository, tag string) ([]registry.PlatformImage, error)
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Client            Client
	PreferredPlatform string
}

// Item represents a selectable menu entry. Columns carry the pre-split cell
// values for tabular panes; Detail holds the untruncated text shown in the
// detail pane when the entry has no child menu.
type Item struct {
	ID      string
	Label   string
	Columns []string
	Detail  string
	Node    *Node
}

// Menu is one loaded level of the hierarchy.
type Menu struct {
	Heading string
	Summary string
	Items   []Item
}
