package menu

import (
	"context"
	"fmt"

	"github.com/djmattyg007/docker-registry-tui/internal/format"
	"github.com/djmattyg007/docker-registry-tui/internal/registry"
)

func (n *Node) loadNamespaces(ctx context.Context, mc Context) (*Menu, error) {
	namespaces, err := mc.Client.Namespaces(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(namespaces))
	for _, ns := range namespaces {
		items = append(items, Item{
			ID:    "namespace:" + ns,
			Label: ns,
			Node: &Node{
				Kind:      KindRepositories,
				ID:        "namespace:" + ns,
				Label:     ns,
				Namespace: ns,
			},
		})
	}
	return n.finish(items), nil
}

func (n *Node) loadRepositories(ctx context.Context, mc Context) (*Menu, error) {
	repos, err := mc.Client.Repositories(ctx, n.Namespace)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(repos))
	for _, repo := range repos {
		items = append(items, Item{
			ID:    "repo:" + repo.Path,
			Label: repo.Name,
			Node: &Node{
				Kind:      KindTags,
				ID:        "repo:" + repo.Path,
				Label:     repo.Name,
				Namespace: n.Namespace,
				Repo:      repo,
			},
		})
	}
	return n.finish(items), nil
}

func (n *Node) loadTags(ctx context.Context, mc Context) (*Menu, error) {
	tags, err := mc.Client.Tags(ctx, n.Repo)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(tags))
	for _, tag := range tags {
		items = append(items, Item{
			ID:    "tag:" + n.Repo.Path + ":" + tag,
			Label: tag,
			Node: &Node{
				Kind:  KindPlatforms,
				ID:    "tag:" + n.Repo.Path + ":" + tag,
				Label: tag,
				Repo:  n.Repo,
				Tag:   tag,
			},
		})
	}
	return n.finish(items), nil
}

func (n *Node) loadPlatforms(ctx context.Context, mc Context) (*Menu, error) {
	pimages, err := mc.Client.PlatformImages(ctx, n.Repo, n.Tag)
	if err != nil {
		return nil, err
	}
	pimages = preferredFirst(pimages, mc.PreferredPlatform)
	items := make([]Item, 0, len(pimages))
	for _, pimage := range pimages {
		items = append(items, Item{
			ID:    "image:" + n.Repo.Path + ":" + n.Tag + "@" + pimage.Digest,
			Label: pimage.Platform,
			Columns: []string{
				pimage.Platform,
				format.TrimDigest(pimage.Digest),
				format.Size(pimage.TotalLayerSize()),
			},
			Node: &Node{
				Kind:  KindLayers,
				ID:    "image:" + n.Repo.Path + ":" + n.Tag + "@" + pimage.Digest,
				Label: pimage.Platform,
				Repo:  n.Repo,
				Tag:   n.Tag,
				Image: pimage,
			},
		})
	}
	return n.finish(items), nil
}

// loadLayers needs no registry round-trip: the platform image already carries
// layers and config history.
func (n *Node) loadLayers() (*Menu, error) {
	items := make([]Item, 0, len(n.Image.History))
	for i, entry := range n.Image.History {
		created := format.CleanCreatedBy(entry.CreatedBy)
		items = append(items, Item{
			ID:     fmt.Sprintf("layer:%s:%d", n.Image.Digest, i),
			Label:  format.TruncateLabel(created),
			Detail: created,
			Columns: []string{
				format.Size(n.Image.LayerSizeAt(i)),
				format.TruncateLabel(created),
			},
		})
	}
	return n.finish(items), nil
}

func (n *Node) finish(items []Item) *Menu {
	singular, plural := n.noun()
	return &Menu{
		Heading: n.Heading(),
		Summary: format.Count(len(items), singular, plural),
		Items:   items,
	}
}

// preferredFirst moves images matching the preferred platform to the front,
// keeping the registry's order otherwise.
func preferredFirst(pimages []registry.PlatformImage, preferred string) []registry.PlatformImage {
	if preferred == "" {
		return pimages
	}
	ordered := make([]registry.PlatformImage, 0, len(pimages))
	var rest []registry.PlatformImage
	for _, pimage := range pimages {
		if pimage.Platform == preferred {
			ordered = append(ordered, pimage)
		} else {
			rest = append(rest, pimage)
		}
	}
	return append(ordered, rest...)
}
