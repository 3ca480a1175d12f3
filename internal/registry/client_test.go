package registry_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djmattyg007/docker-registry-tui/internal/registry"
	"github.com/djmattyg007/docker-registry-tui/internal/testutil"
)

func newClient(t *testing.T, f *testutil.Fixture) *registry.Client {
	t.Helper()
	client, err := registry.New(registry.Config{URL: f.URL()})
	require.NoError(t, err)
	return client
}

func TestNewRejectsEmptyURL(t *testing.T) {
	_, err := registry.New(registry.Config{})
	require.Error(t, err)
}

func TestNewParsesScheme(t *testing.T) {
	client, err := registry.New(registry.Config{URL: "http://registry.example.com:5000"})
	require.NoError(t, err)
	assert.Equal(t, "registry.example.com:5000", client.Host())
}

func TestNamespacesAndRepositories(t *testing.T) {
	f := testutil.StartRegistry(t)
	f.PushRandom(t, "acme/web", "latest")
	f.PushRandom(t, "acme/api", "latest")
	f.PushRandom(t, "nginx", "latest")

	client := newClient(t, f)
	ctx := context.Background()

	namespaces, err := client.Namespaces(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "library"}, namespaces)

	repos, err := client.Repositories(ctx, "acme")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "api", repos[0].Name)
	assert.Equal(t, "web", repos[1].Name)
	assert.Equal(t, "acme/web", repos[1].Path)

	library, err := client.Repositories(ctx, "library")
	require.NoError(t, err)
	require.Len(t, library, 1)
	assert.Equal(t, "nginx", library[0].Path)
}

func TestTags(t *testing.T) {
	f := testutil.StartRegistry(t)
	f.PushRandom(t, "acme/web", "latest")
	f.PushRandom(t, "acme/web", "v1.2")

	client := newClient(t, f)
	repo := registry.Repository{Namespace: "acme", Name: "web", Path: "acme/web"}

	tags, err := client.Tags(context.Background(), repo)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"latest", "v1.2"}, tags)
}

func TestTagsMissingRepository(t *testing.T) {
	f := testutil.StartRegistry(t)
	client := newClient(t, f)
	repo := registry.Repository{Namespace: "acme", Name: "ghost", Path: "acme/ghost"}

	_, err := client.Tags(context.Background(), repo)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestPlatformImagesSingleManifest(t *testing.T) {
	f := testutil.StartRegistry(t)
	img := testutil.ImageWithHistory(t, []testutil.Step{
		{CreatedBy: "/bin/sh -c #(nop) COPY file:abc in /app ", Data: "content"},
		{CreatedBy: "/bin/sh -c #(nop)  CMD [\"/app/run\"]", Empty: true},
	})
	f.Push(t, "acme/web", "latest", img)

	client := newClient(t, f)
	repo := registry.Repository{Namespace: "acme", Name: "web", Path: "acme/web"}

	pimages, err := client.PlatformImages(context.Background(), repo, "latest")
	require.NoError(t, err)
	require.Len(t, pimages, 1)

	pimage := pimages[0]
	assert.True(t, strings.HasPrefix(pimage.Digest, "sha256:"))
	require.Len(t, pimage.Layers, 1)
	require.Len(t, pimage.History, 2)
	assert.False(t, pimage.History[0].EmptyLayer)
	assert.True(t, pimage.History[1].EmptyLayer)
	assert.Equal(t, pimage.Layers[0].Size, pimage.LayerSizeAt(0))
	assert.Equal(t, int64(0), pimage.LayerSizeAt(1))
	assert.Equal(t, pimage.Layers[0].Size, pimage.TotalLayerSize())
}

func TestRawManifestMemoized(t *testing.T) {
	f := testutil.StartRegistry(t)
	f.PushRandom(t, "acme/web", "latest")

	client := newClient(t, f)
	repo := registry.Repository{Namespace: "acme", Name: "web", Path: "acme/web"}

	first, err := client.RawManifest(context.Background(), repo, "latest")
	require.NoError(t, err)
	assert.Contains(t, first, "schemaVersion")
	assert.True(t, strings.HasPrefix(first, "{\n  "))

	second, err := client.RawManifest(context.Background(), repo, "latest")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPingUnreachable(t *testing.T) {
	client, err := registry.New(registry.Config{URL: "http://127.0.0.1:1", Insecure: true})
	require.NoError(t, err)
	assert.ErrorIs(t, client.Ping(context.Background()), registry.ErrUnreachable)
}

func TestPingReachable(t *testing.T) {
	f := testutil.StartRegistry(t)
	client := newClient(t, f)
	require.NoError(t, client.Ping(context.Background()))
}
