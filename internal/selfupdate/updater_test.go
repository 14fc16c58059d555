package selfupdate

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// release is a fake GitHub release served over httptest: a tag, its asset
// archives, and the checksums.txt manifest derived from them.
type release struct {
	tag    string
	assets map[string][]byte
}

// serve stands up an httptest server answering the latest-release API call
// and the per-file download URLs for this release.
func (rel release) serve(t *testing.T) *httptest.Server {
	t.Helper()

	var manifest bytes.Buffer
	for name, data := range rel.assets {
		sum := sha256.Sum256(data)
		manifest.WriteString(hex.EncodeToString(sum[:]) + "  " + name + "\n")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ananya/studydeck/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"` + rel.tag + `","html_url":"https://example.com/` + rel.tag + `"}`))
	})
	mux.HandleFunc("/ananya/studydeck/releases/download/"+rel.tag+"/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(manifest.Bytes())
	})
	for name, data := range rel.assets {
		data := data
		mux.HandleFunc("/ananya/studydeck/releases/download/"+rel.tag+"/"+name, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(data)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// packTarGz builds a tar.gz archive holding a single executable entry.
func packTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: name,
		Size: int64(len(content)),
		Mode: 0755,
	}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

// fakeBinary writes an "installed" studydeck binary and returns its path.
func fakeBinary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "studydeck")
	require.NoError(t, os.WriteFile(path, []byte(content), 0755))
	return path
}

func TestAssetFor(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"darwin", "amd64", "studydeck_Darwin_all.tar.gz"},
		{"darwin", "arm64", "studydeck_Darwin_all.tar.gz"},
		{"linux", "amd64", "studydeck_Linux_x86_64.tar.gz"},
		{"linux", "arm64", "studydeck_Linux_arm64.tar.gz"},
		{"linux", "386", "studydeck_Linux_i386.tar.gz"},
		{"windows", "amd64", "studydeck_Windows_x86_64.zip"},
		{"windows", "arm64", "studydeck_Windows_arm64.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetFor(tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported platforms", func(t *testing.T) {
		_, err := assetFor("plan9", "amd64")
		require.Error(t, err)
		_, err = assetFor("linux", "mips")
		require.Error(t, err)
	})
}

func TestParseChecksumManifest(t *testing.T) {
	manifest := "aaa111  studydeck_Darwin_all.tar.gz\n" +
		"this line is noise\n" +
		"\n" +
		"bbb222  studydeck_Linux_x86_64.tar.gz\n"

	got := parseChecksumManifest([]byte(manifest))
	assert.Equal(t, map[string]string{
		"studydeck_Darwin_all.tar.gz":   "aaa111",
		"studydeck_Linux_x86_64.tar.gz": "bbb222",
	}, got)

	assert.Empty(t, parseChecksumManifest(nil))
}

func TestCheckSHA256(t *testing.T) {
	data := []byte("studydeck release payload")
	sum := sha256.Sum256(data)

	assert.NoError(t, checkSHA256(data, hex.EncodeToString(sum[:])))

	err := checkSHA256(data, "deadbeef")
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestUnpackBinary(t *testing.T) {
	payload := []byte("#!/bin/sh\necho studydeck v2")

	t.Run("tar.gz", func(t *testing.T) {
		got, err := unpackBinary(packTarGz(t, "studydeck", payload), "studydeck_Linux_x86_64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("binary missing from archive", func(t *testing.T) {
		_, err := unpackBinary(packTarGz(t, "README.md", payload), "studydeck_Linux_x86_64.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("corrupt archive", func(t *testing.T) {
		_, err := unpackBinary([]byte("not a gzip stream"), "studydeck_Linux_x86_64.tar.gz")
		require.Error(t, err)
	})
}

func TestSwapBinary(t *testing.T) {
	target := fakeBinary(t, "old studydeck")

	next := []byte("new studydeck")
	sum := sha256.Sum256(next)
	require.NoError(t, swapBinary(next, target, sum[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, next, got)

	// The replacement keeps the executable bit of the original.
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestUpdate(t *testing.T) {
	payload := []byte("studydeck v2.0.0 binary")

	// Update resolves the asset for the platform it runs on; the fake
	// release must carry that same asset. Zip platforms are out of scope
	// for this archive fixture.
	asset, err := assetFor(runtime.GOOS, runtime.GOARCH)
	if err != nil || strings.HasSuffix(asset, ".zip") {
		t.Skipf("no tar.gz release asset for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	newChecker := func(server *httptest.Server, execPath string) *Checker {
		return NewChecker(
			WithBaseURL(server.URL),
			WithDownloadBaseURL(server.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)
	}

	t.Run("full flow replaces the binary", func(t *testing.T) {
		server := release{
			tag:    "v2.0.0",
			assets: map[string][]byte{asset: packTarGz(t, "studydeck", payload)},
		}.serve(t)
		execPath := fakeBinary(t, "v1 binary")

		var stages []string
		err := newChecker(server, execPath).Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"},
			func(p UpdateProgress) { stages = append(stages, p.Stage) })
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("dev build refuses", func(t *testing.T) {
		err := NewChecker().Update(context.Background(),
			&UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		server := release{tag: "v1.0.0"}.serve(t)
		err := newChecker(server, "").Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("tampered archive fails verification", func(t *testing.T) {
		archive := packTarGz(t, "studydeck", payload)

		// Serve a manifest for different bytes than the archive delivered.
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/ananya/studydeck/releases/latest", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tag_name":"v2.0.0","html_url":"https://example.com/v2.0.0"}`))
		})
		mux.HandleFunc("/ananya/studydeck/releases/download/v2.0.0/checksums.txt", func(w http.ResponseWriter, r *http.Request) {
			sum := sha256.Sum256([]byte("other bytes"))
			_, _ = w.Write([]byte(hex.EncodeToString(sum[:]) + "  " + asset + "\n"))
		})
		mux.HandleFunc("/ananya/studydeck/releases/download/v2.0.0/"+asset, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(archive)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		err := newChecker(server, "").Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("missing asset fails the download stage", func(t *testing.T) {
		server := release{tag: "v2.0.0"}.serve(t)
		err := newChecker(server, "").Update(context.Background(),
			&UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}
