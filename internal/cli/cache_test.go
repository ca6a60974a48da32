package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/scenepatch/pkg/cache"
	"github.com/matzehuels/scenepatch/pkg/config"
)

func TestCacheDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)

	c := New(io.Discard, LogInfo)
	dir, err := c.Config.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error: %v", err)
	}
	if want := filepath.Join(tmp, "scenepatch"); dir != want {
		t.Errorf("CacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = t.TempDir()

	tests := []struct {
		name    string
		backend string
		noCache bool
		wantNil bool
	}{
		{"file", config.CacheFile, false, false},
		{"none", config.CacheNone, false, true},
		{"no-cache flag", config.CacheFile, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.Config.Cache.Backend = tt.backend
			got, err := c.newCache(ctx, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error = %v", err)
			}
			_, isNull := got.(cache.NullCache)
			if isNull != tt.wantNil {
				t.Errorf("newCache() = %T, want null cache %v", got, tt.wantNil)
			}
		})
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived cache clear")
	}
}

func TestCacheInfoCommand(t *testing.T) {
	out, _ := captureOutput(t)
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("artifact"), 0); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \""+dir+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"info", "path"} {
		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs([]string{"--config", cfgPath, "cache", sub})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("cache %s: %v", sub, err)
		}
	}
	got := out.String()
	if !strings.Contains(got, dir) {
		t.Errorf("output missing cache dir: %q", got)
	}
	if !strings.Contains(got, "entries") {
		t.Errorf("output missing entry count: %q", got)
	}
}

func TestCacheCommandRejectsOtherBackends(t *testing.T) {
	captureOutput(t)
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", writeConfig(t), "cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("cache clear with backend none should fail")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
