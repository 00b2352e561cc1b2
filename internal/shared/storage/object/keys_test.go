package object

import (
	"strings"
	"testing"
)

func TestBuildKeyNamespacesByFolderAndOwner(t *testing.T) {
	key, err := BuildKey("guest:abc", FolderStoryImages, "my photo.png")
	if err != nil {
		t.Fatalf("BuildKey: %v", err)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 3 {
		t.Fatalf("unexpected key shape: %q", key)
	}
	if parts[0] != FolderStoryImages {
		t.Fatalf("unexpected folder: %q", parts[0])
	}
	if parts[1] != ownerSegment("guest:abc") {
		t.Fatalf("unexpected owner segment: %q", parts[1])
	}
	if !strings.HasSuffix(parts[2], "_my-photo.png") {
		t.Fatalf("unexpected file segment: %q", parts[2])
	}
}

func TestBuildKeyRejectsTraversal(t *testing.T) {
	if _, err := BuildKey("u", FolderResumeFiles, "../etc/passwd"); err == nil {
		t.Fatalf("expected error for traversal name")
	}
	if _, err := BuildKey("u", "../x", "a.pdf"); err == nil {
		t.Fatalf("expected error for traversal folder")
	}
}

func TestOwnerSegmentIsStableHex(t *testing.T) {
	got := ownerSegment("google:12345")
	if got != ownerSegment("google:12345") {
		t.Fatalf("expected stable hash, got %s", got)
	}
	if len(got) != 64 || strings.Trim(got, "0123456789abcdef") != "" {
		t.Fatalf("expected 64 hex characters, got %q", got)
	}
}

func TestCleanFileName(t *testing.T) {
	cases := map[string]string{
		"  cv  final.pdf ": "cv-final.pdf",
		"dir/name.txt":     "dir_name.txt",
		"tab\there.md":    "tab_there.md",
	}
	for in, want := range cases {
		got, err := cleanFileName(in)
		if err != nil {
			t.Fatalf("cleanFileName(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("cleanFileName(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := cleanFileName("   "); err == nil {
		t.Fatalf("expected blank name to fail")
	}
	long, err := cleanFileName(strings.Repeat("a", 150) + ".pdf")
	if err != nil || len(long) != maxNameLen || !strings.HasSuffix(long, ".pdf") {
		t.Fatalf("expected truncated name keeping extension, got %q (%v)", long, err)
	}
}
