package menu

import (
	"context"
	"fmt"

	"github.com/djmattyg007/docker-registry-tui/internal/registry"
)

// Node represents one expandable position in the hierarchy. A node owns the
// coordinates needed to load its menu (namespace, repository, tag, image) and
// a slot holding the loaded menu until the cache reclaims it.
type Node struct {
	Kind  Kind
	ID    string
	Label string

	Namespace string
	Repo      registry.Repository
	Tag       string
	Image     registry.PlatformImage

	slot *Menu
}

// NewRoot returns the namespaces node the whole hierarchy hangs off.
func NewRoot() *Node {
	return &Node{Kind: KindNamespaces, ID: "namespaces", Label: "Namespaces"}
}

// Heading returns the title rendered above this node's menu.
func (n *Node) Heading() string {
	switch n.Kind {
	case KindNamespaces:
		return "Namespaces"
	case KindRepositories:
		return "Images: " + n.Namespace
	case KindTags:
		return "Tags: " + n.Repo.Path
	case KindPlatforms:
		return fmt.Sprintf("%s - %s", n.Repo.Path, n.Tag)
	case KindLayers:
		return n.Image.Platform
	}
	return n.Label
}

// noun returns the singular/plural pair used in the menu summary line.
func (n *Node) noun() (string, string) {
	switch n.Kind {
	case KindNamespaces:
		return "namespace", "namespaces"
	case KindRepositories:
		return "image", "images"
	case KindTags:
		return "tag", "tags"
	case KindPlatforms:
		return "platform", "platforms"
	case KindLayers:
		return "layer", "layers"
	}
	return "item", "items"
}

// load builds the node's menu from the registry. Only KindLayers is loadable
// without a round-trip; everything else goes through the client.
func (n *Node) load(ctx context.Context, mc Context) (*Menu, error) {
	switch n.Kind {
	case KindNamespaces:
		return n.loadNamespaces(ctx, mc)
	case KindRepositories:
		return n.loadRepositories(ctx, mc)
	case KindTags:
		return n.loadTags(ctx, mc)
	case KindPlatforms:
		return n.loadPlatforms(ctx, mc)
	case KindLayers:
		return n.loadLayers()
	}
	return nil, fmt.Errorf("menu: node %q has no loader", n.ID)
}
