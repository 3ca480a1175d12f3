package registry

import "testing"

func TestParseRepository(t *testing.T) {
	repo := parseRepository("mycorp/backend/api")
	if repo.Namespace != "mycorp" || repo.Name != "backend/api" || repo.Path != "mycorp/backend/api" {
		t.Fatalf("unexpected repository %#v", repo)
	}

	repo = parseRepository("nginx")
	if repo.Namespace != DefaultNamespace || repo.Name != "nginx" || repo.Path != "nginx" {
		t.Fatalf("unexpected repository %#v", repo)
	}
}

func TestNamespacesOf(t *testing.T) {
	catalog := []string{"zeta/tool", "nginx", "acme/api", "acme/web"}
	namespaces := namespacesOf(catalog)
	want := []string{"acme", "library", "zeta"}
	if len(namespaces) != len(want) {
		t.Fatalf("unexpected namespaces %v", namespaces)
	}
	for i, ns := range want {
		if namespaces[i] != ns {
			t.Fatalf("expected %v, got %v", want, namespaces)
		}
	}
}

func TestRepositoriesOfSorted(t *testing.T) {
	catalog := []string{"acme/web", "acme/api", "other/thing"}
	repos := repositoriesOf(catalog, "acme")
	if len(repos) != 2 || repos[0].Name != "api" || repos[1].Name != "web" {
		t.Fatalf("unexpected repositories %#v", repos)
	}
}

func TestTotalLayerSize(t *testing.T) {
	pimage := PlatformImage{Layers: []Layer{{Size: 100}, {Size: 28}}}
	if got := pimage.TotalLayerSize(); got != 128 {
		t.Fatalf("expected 128, got %d", got)
	}
}

func TestLayerSizeAt(t *testing.T) {
	pimage := PlatformImage{
		Layers: []Layer{{Size: 2048}},
		History: []HistoryEntry{
			{CreatedBy: "/bin/sh -c #(nop) COPY x", EmptyLayer: false},
			{CreatedBy: "/bin/sh -c #(nop)  CMD [x] # buildkit", EmptyLayer: true},
		},
	}
	if got := pimage.LayerSizeAt(0); got != 2048 {
		t.Fatalf("expected layer size 2048, got %d", got)
	}
	if got := pimage.LayerSizeAt(1); got != 0 {
		t.Fatalf("expected empty layer size 0, got %d", got)
	}
}

func TestLayerSizeAtPanicsOnMissingLayer(t *testing.T) {
	pimage := PlatformImage{
		Layers:  nil,
		History: []HistoryEntry{{CreatedBy: "RUN build", EmptyLayer: false}},
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-empty history entry without a layer")
		}
	}()
	pimage.LayerSizeAt(0)
}

func TestPrettyJSON(t *testing.T) {
	out, err := prettyJSON([]byte(`{"a":1,"b":[2,3]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    2,\n    3\n  ]\n}"
	if out != want {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
