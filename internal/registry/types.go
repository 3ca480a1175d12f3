package registry

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultNamespace groups catalog entries that carry no namespace segment.
const DefaultNamespace = "library"

// Repository identifies a single repository within the registry catalog.
type Repository struct {
	// Namespace is the first path segment, or DefaultNamespace when the
	// catalog entry has none.
	Namespace string
	// Name is the path below the namespace.
	Name string
	// Path is the full catalog path as listed by the registry.
	Path string
}

func parseRepository(path string) Repository {
	if idx := strings.Index(path, "/"); idx >= 0 {
		return Repository{Namespace: path[:idx], Name: path[idx+1:], Path: path}
	}
	return Repository{Namespace: DefaultNamespace, Name: path, Path: path}
}

// Layer is a single filesystem layer of a platform image.
type Layer struct {
	Digest string
	Size   int64
}

// HistoryEntry is one build-step record from the image config.
type HistoryEntry struct {
	CreatedBy  string
	EmptyLayer bool
}

// PlatformImage is the architecture/OS-specific variant of a (possibly
// multi-platform) image manifest.
type PlatformImage struct {
	Platform string
	Digest   string
	Layers   []Layer
	History  []HistoryEntry
}

// TotalLayerSize sums the compressed sizes of all layers.
func (p PlatformImage) TotalLayerSize() int64 {
	var total int64
	for _, layer := range p.Layers {
		total += layer.Size
	}
	return total
}

// LayerSizeAt resolves the layer size for the history entry at idx. Empty
// layers resolve to zero; the i-th non-empty history entry maps onto the
// i-th layer. Well-formed registry data always produces a match, so a
// non-empty entry beyond the layer list is a fatal invariant violation.
func (p PlatformImage) LayerSizeAt(idx int) int64 {
	if idx < 0 || idx >= len(p.History) {
		panic(fmt.Sprintf("history index %d out of range (0..%d)", idx, len(p.History)-1))
	}
	if p.History[idx].EmptyLayer {
		return 0
	}
	layerIdx := 0
	for i := 0; i < idx; i++ {
		if !p.History[i].EmptyLayer {
			layerIdx++
		}
	}
	if layerIdx >= len(p.Layers) {
		panic(fmt.Sprintf("history entry %d has no matching layer (layers=%d)", idx, len(p.Layers)))
	}
	return p.Layers[layerIdx].Size
}

func namespacesOf(catalog []string) []string {
	seen := make(map[string]struct{})
	for _, path := range catalog {
		seen[parseRepository(path).Namespace] = struct{}{}
	}
	namespaces := make([]string, 0, len(seen))
	for ns := range seen {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	return namespaces
}

func repositoriesOf(catalog []string, namespace string) []Repository {
	repos := make([]Repository, 0, len(catalog))
	for _, path := range catalog {
		repo := parseRepository(path)
		if repo.Namespace == namespace {
			repos = append(repos, repo)
		}
	}
	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })
	return repos
}
