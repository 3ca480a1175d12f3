package main

import (
	"testing"

	"github.com/djmattyg007/docker-registry-tui/internal/config"
)

func TestCollectTTYDetailsProbesAllDescriptors(t *testing.T) {
	details := collectTTYDetails()
	if len(details.Probes) != 3 {
		t.Fatalf("expected 3 probes, got %d", len(details.Probes))
	}
	names := map[string]bool{}
	for _, probe := range details.Probes {
		names[probe.Name] = true
	}
	for _, want := range []string{"stdin", "stdout", "stderr"} {
		if !names[want] {
			t.Fatalf("missing probe %q", want)
		}
	}
}

func TestStartupTracePayload(t *testing.T) {
	cfg, err := config.LoadArgs([]string{"-registry", "https://registry.example.com", "-trace"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	payload := startupTracePayload(cfg)
	if payload["registry"] != "https://registry.example.com" {
		t.Fatalf("unexpected registry in payload: %v", payload["registry"])
	}
	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("flags missing from payload")
	}
	if flags["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flags["trace"])
	}
}
