package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/gravity-runner/internal/config"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// testFS builds a file system where frame i is (i+1) pixels wide so frame
// order can be checked after a concurrent load.
func testFS(t *testing.T, frames int) (fstest.MapFS, Manifest) {
	t.Helper()
	fsys := fstest.MapFS{
		"bg.png":  {Data: encodePNG(t, 64, 40)},
		"obs.png": {Data: encodePNG(t, 5, 8)},
	}
	m := Manifest{Background: "bg.png", Obstacle: "obs.png"}
	for i := 0; i < frames; i++ {
		name := "frames/f" + string(rune('0'+i)) + ".png"
		fsys[name] = &fstest.MapFile{Data: encodePNG(t, i+1, 4)}
		m.PlayerFrames = append(m.PlayerFrames, name)
	}
	return fsys, m
}

func TestLoadKeepsFrameOrder(t *testing.T) {
	fsys, m := testFS(t, 5)
	set, err := NewLoader(DirSource{FS: fsys, Root: "test"}, nil).Load(context.Background(), m)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(set.PlayerFrames) != 5 {
		t.Fatalf("frames = %d, want 5", len(set.PlayerFrames))
	}
	for i, img := range set.PlayerFrames {
		if got := img.Bounds().Dx(); got != i+1 {
			t.Errorf("frame %d width = %d, want %d", i, got, i+1)
		}
	}

	w, h := set.BackgroundSize()
	if w != 64 || h != 40 {
		t.Errorf("BackgroundSize() = %vx%v, want 64x40", w, h)
	}
	if set.Obstacle.Bounds().Dy() != 8 {
		t.Errorf("obstacle height = %d, want 8", set.Obstacle.Bounds().Dy())
	}
}

func TestLoadMissingImageNamesPath(t *testing.T) {
	fsys, m := testFS(t, 3)
	delete(fsys, "frames/f1.png")

	_, err := NewLoader(DirSource{FS: fsys, Root: "test"}, nil).Load(context.Background(), m)
	if err == nil {
		t.Fatal("Load() should fail when a frame is missing")
	}

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("error %T is not a *LoadError", err)
	}
	if le.Name != "frames/f1.png" {
		t.Errorf("LoadError.Name = %q, want frames/f1.png", le.Name)
	}
	if !strings.Contains(err.Error(), "test/frames/f1.png") {
		t.Errorf("error %q does not name the location", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist, got %v", err)
	}
}

func TestLoadRejectsCorruptImage(t *testing.T) {
	fsys, m := testFS(t, 1)
	fsys["obs.png"] = &fstest.MapFile{Data: []byte("not a png")}

	_, err := NewLoader(DirSource{FS: fsys}, nil).Load(context.Background(), m)
	var le *LoadError
	if !errors.As(err, &le) || le.Name != "obs.png" {
		t.Fatalf("Load() error = %v, want LoadError for obs.png", err)
	}
}

func TestLoadRequiresFrames(t *testing.T) {
	fsys, m := testFS(t, 0)
	if _, err := NewLoader(DirSource{FS: fsys}, nil).Load(context.Background(), m); err == nil {
		t.Error("Load() should fail without player frames")
	}
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	m := ManifestFromConfig(config.DefaultRunnerConfig().Assets)
	set, err := NewLoader(Embedded(), nil).Load(context.Background(), m)
	if err != nil {
		t.Fatalf("Load(embedded) error = %v", err)
	}
	if len(set.PlayerFrames) != 5 {
		t.Errorf("frames = %d, want 5", len(set.PlayerFrames))
	}
	w, h := set.BackgroundSize()
	if w != 320 || h != 200 {
		t.Errorf("background = %vx%v, want 320x200", w, h)
	}
}

func TestHTTPSource(t *testing.T) {
	fsys, m := testFS(t, 2)
	srv := httptest.NewServer(http.StripPrefix("/static/", http.FileServer(http.FS(fsys))))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/static", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTPSource() error = %v", err)
	}
	if got, want := src.Location("bg.png"), srv.URL+"/static/bg.png"; got != want {
		t.Errorf("Location() = %q, want %q", got, want)
	}

	set, err := NewLoader(src, nil).Load(context.Background(), m)
	if err != nil {
		t.Fatalf("Load(http) error = %v", err)
	}
	if set.PlayerFrames[1].Bounds().Dx() != 2 {
		t.Errorf("frame 1 width = %d, want 2", set.PlayerFrames[1].Bounds().Dx())
	}

	m.Obstacle = "missing.png"
	_, err = NewLoader(src, nil).Load(context.Background(), m)
	if err == nil || !strings.Contains(err.Error(), "/static/missing.png") {
		t.Errorf("Load() error = %v, want failure naming missing.png URL", err)
	}
}

func TestNewHTTPSourceRejectsBadScheme(t *testing.T) {
	for _, raw := range []string{"ftp://example.com/", "::bad"} {
		if _, err := NewHTTPSource(raw, nil); err == nil {
			t.Errorf("NewHTTPSource(%q) should fail", raw)
		}
	}
}
