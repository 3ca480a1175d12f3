// Package testutil provides an in-memory registry fixture for tests that
// need a real distribution endpoint without network access.
package testutil

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	gcrregistry "github.com/google/go-containerregistry/pkg/registry"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/static"
	"github.com/google/go-containerregistry/pkg/v1/types"
)

// Fixture wraps an in-memory distribution registry served over HTTP.
type Fixture struct {
	Host string
}

// StartRegistry boots an in-memory registry and tears it down with the test.
func StartRegistry(t *testing.T) *Fixture {
	t.Helper()
	srv := httptest.NewServer(gcrregistry.New())
	t.Cleanup(srv.Close)
	return &Fixture{Host: strings.TrimPrefix(srv.URL, "http://")}
}

// URL returns the http endpoint of the fixture registry.
func (f *Fixture) URL() string {
	return "http://" + f.Host
}

// Push writes an image under path:tag.
func (f *Fixture) Push(t *testing.T, path, tag string, img v1.Image) {
	t.Helper()
	ref, err := name.ParseReference(fmt.Sprintf("%s/%s:%s", f.Host, path, tag), name.WeakValidation, name.Insecure)
	if err != nil {
		t.Fatalf("parse reference: %v", err)
	}
	if err := remote.Write(ref, img); err != nil {
		t.Fatalf("push %s:%s: %v", path, tag, err)
	}
}

// PushRandom writes a small random image under path:tag and returns it.
func (f *Fixture) PushRandom(t *testing.T, path, tag string) v1.Image {
	t.Helper()
	img, err := random.Image(256, 1)
	if err != nil {
		t.Fatalf("random image: %v", err)
	}
	f.Push(t, path, tag, img)
	return img
}

// Step describes one build step of a fixture image.
type Step struct {
	CreatedBy string
	Empty     bool
	Data      string
}

// ImageWithHistory builds a single-platform image whose config history and
// layers follow the given steps.
func ImageWithHistory(t *testing.T, steps []Step) v1.Image {
	t.Helper()
	img := empty.Image
	for i, step := range steps {
		add := mutate.Addendum{
			History: v1.History{CreatedBy: step.CreatedBy, EmptyLayer: step.Empty},
		}
		if !step.Empty {
			data := step.Data
			if data == "" {
				data = fmt.Sprintf("layer-%d", i)
			}
			add.Layer = static.NewLayer([]byte(data), types.DockerLayer)
		}
		var err error
		img, err = mutate.Append(img, add)
		if err != nil {
			t.Fatalf("append step %d: %v", i, err)
		}
	}
	return img
}
