package format

import "testing"

func TestCount(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0 tags"},
		{1, "1 tag"},
		{5, "5 tags"},
		{1200, "1,200 tags"},
	}
	for _, tc := range cases {
		if got := Count(tc.n, "tag", "tags"); got != tc.want {
			t.Fatalf("Count(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestSize(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1 KiB"},
		{2048, "2 KiB"},
		{2560, "2.5 KiB"},
		{5 * 1024 * 1024, "5 MiB"},
		{3 * 1024 * 1024 * 1024, "3 GiB"},
	}
	for _, tc := range cases {
		if got := Size(tc.n); got != tc.want {
			t.Fatalf("Size(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestTrimDigest(t *testing.T) {
	digest := "sha256:83d1ba11ec714b25e4cd6ab0e0b1a4eb41a5d0dd44b5bdc8f041dbfc6a28c4a6"
	if got := TrimDigest(digest); got != "83d1ba11ec71" {
		t.Fatalf("TrimDigest = %q", got)
	}
	if got := TrimDigest("short"); got != "short" {
		t.Fatalf("expected short digests passed through, got %q", got)
	}
}

func TestCleanCreatedBy(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/bin/sh -c #(nop) COPY x /x", "COPY x /x"},
		{"/bin/sh -c #(nop)  CMD [\"sh\"] # buildkit", "CMD [\"sh\"]"},
		{"  RUN apt-get update  ", "RUN apt-get update"},
		{"/bin/sh -c #(nop)", ""},
	}
	for _, tc := range cases {
		if got := CleanCreatedBy(tc.in); got != tc.want {
			t.Fatalf("CleanCreatedBy(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	long := "COPY some/deeply/nested/path /opt/app"
	got := TruncateLabel(long)
	if len([]rune(got)) != 25 {
		t.Fatalf("expected 25 runes, got %d (%q)", len([]rune(got)), got)
	}
	if got != long[:22]+"..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	short := "RUN make"
	if got := TruncateLabel(short); got != short {
		t.Fatalf("expected short label unchanged, got %q", got)
	}
}
