package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/matzehuels/mypoly/pkg/buildinfo"
	"github.com/matzehuels/mypoly/pkg/cache"
	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(cache.NewMemoryCache(0), nil)
	ts := httptest.NewServer(New(nil, runner, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, body
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("healthz = %d %q", resp.StatusCode, body)
	}
	if got := resp.Header.Get(VersionHeader); got != buildinfo.Short() {
		t.Errorf("%s = %q, want %q", VersionHeader, got, buildinfo.Short())
	}
}

func TestCatalog(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/catalog")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var got catalogResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	flat := got.Variants[catalog.Flat]
	if len(flat.Categories) != 4 || flat.Categories[0].Name != catalog.Face {
		t.Errorf("flat categories = %+v", flat.Categories)
	}
	if len(got.Variants[catalog.Solid].Slots) != 5 {
		t.Errorf("solid slots = %+v", got.Variants[catalog.Solid].Slots)
	}
	if len(got.Params) != 3 {
		t.Errorf("params = %+v", got.Params)
	}
}

func TestArtifactCaching(t *testing.T) {
	ts := newTestServer(t)

	resp, first := get(t, ts, "/avatar.svg?hair=hair-2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, first)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(CacheHeader) != "MISS" {
		t.Errorf("first request %s = %q", CacheHeader, resp.Header.Get(CacheHeader))
	}

	resp, second := get(t, ts, "/avatar.svg?hair=hair-2")
	if resp.Header.Get(CacheHeader) != "HIT" {
		t.Errorf("second request %s = %q", CacheHeader, resp.Header.Get(CacheHeader))
	}
	if !bytes.Equal(first, second) {
		t.Error("cached response differs")
	}
	if !bytes.Contains(first, []byte(`data-option="hair-2"`)) {
		t.Error("selection not applied")
	}
}

func TestModelJSON(t *testing.T) {
	ts := newTestServer(t)
	q := url.Values{"headShape": {"shape2"}, "hairstyle": {"style3"}, "color.shirt": {"#EC4899"}}
	resp, body := get(t, ts, "/model.json?"+q.Encode())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	var got struct {
		HeadShape string `json:"head_shape"`
		Hairstyle string `json:"hairstyle"`
	}
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got.HeadShape != "shape2" || got.Hairstyle != "style3" {
		t.Errorf("got %+v", got)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	ts := newTestServer(t)
	_, a := get(t, ts, "/avatar.toml?seed=7")
	_, b := get(t, ts, "/avatar.toml?seed=7&refresh=true")
	if !bytes.Equal(a, b) {
		t.Errorf("same seed produced different presets:\n%s\n%s", a, b)
	}
}

func TestArtifactErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		status int
		code   errors.Code
	}{
		{"unknown option", "/avatar.svg?hair=hair-9", 400, errors.ErrCodeInvalidSelection},
		{"wrong variant category", "/model.svg?hair=hair-1", 400, errors.ErrCodeInvalidSelection},
		{"unknown slot", "/avatar.svg?color.shoes=000000", 400, errors.ErrCodeInvalidSelection},
		{"bad color", "/avatar.svg?color.skin=zzz", 400, errors.ErrCodeInvalidColor},
		{"out of range", "/model.svg?height=2", 400, errors.ErrCodeOutOfRange},
		{"non-numeric shape", "/model.svg?build=wide", 400, errors.ErrCodeInvalidInput},
		{"unknown key", "/avatar.svg?hat=1", 400, errors.ErrCodeInvalidInput},
		{"bad size", "/avatar.png?w=abc", 400, errors.ErrCodeInvalidInput},
		{"bad seed", "/avatar.svg?seed=-1", 400, errors.ErrCodeInvalidInput},
		{"no flat json", "/avatar.json", 404, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, ts, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			var got errorBody
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("error body %q: %v", body, err)
			}
			if got.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Error.Code, tt.code)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code errors.Code
		want int
	}{
		{errors.ErrCodeOutOfRange, http.StatusBadRequest},
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeTimeout, http.StatusGatewayTimeout},
		{errors.ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
