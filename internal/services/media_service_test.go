package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newDiskMedia(t *testing.T) (*DiskMediaService, string) {
	t.Helper()
	root := t.TempDir()
	uploads := filepath.Join(root, "uploads")
	svc, err := NewDiskMediaService(uploads, filepath.Join(root, "data"), "/uploads/")
	if err != nil {
		t.Fatal(err)
	}
	return svc, uploads
}

func TestDiskMediaUpload(t *testing.T) {
	svc, uploads := newDiskMedia(t)

	file, err := svc.Upload(context.Background(), "front-view.JPG", "image/jpeg", strings.NewReader("jpegdata"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if file.FileID == "" || file.Mime != "image/jpeg" || file.Name != "front-view.JPG" {
		t.Errorf("file = %+v", file)
	}
	if file.URL != "/uploads/"+file.FileID+".jpg" {
		t.Errorf("url = %q", file.URL)
	}
	data, err := os.ReadFile(filepath.Join(uploads, file.FileID+".jpg"))
	if err != nil || string(data) != "jpegdata" {
		t.Errorf("stored file = %q, %v", data, err)
	}
}

func TestDiskMediaRejectsUnsupportedType(t *testing.T) {
	svc, _ := newDiskMedia(t)
	_, err := svc.Upload(context.Background(), "run.sh", "text/x-shellscript", strings.NewReader("#!"))
	if !errors.Is(err, ErrInvalidMedia) {
		t.Errorf("err = %v, want ErrInvalidMedia", err)
	}
}

func TestDiskMediaSearch(t *testing.T) {
	svc, _ := newDiskMedia(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 12; i++ {
		f, err := svc.Upload(ctx, fmt.Sprintf("Villa-%02d.png", i), "image/png", strings.NewReader("png"))
		if err != nil {
			t.Fatal(err)
		}
		svc.files[f.FileID].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	if _, err := svc.Upload(ctx, "brochure.pdf", "application/pdf", strings.NewReader("pdf")); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Search(ctx, "VILLA")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != MediaSearchLimit {
		t.Fatalf("got %d results, want %d", len(got), MediaSearchLimit)
	}
	if got[0].Name != "Villa-11.png" || got[9].Name != "Villa-02.png" {
		t.Errorf("order = %s ... %s", got[0].Name, got[9].Name)
	}

	got, _ = svc.Search(ctx, "brochure")
	if len(got) != 1 || got[0].Mime != "application/pdf" {
		t.Errorf("brochure search = %+v", got)
	}

	got, _ = svc.Search(ctx, "castle")
	if got == nil || len(got) != 0 {
		t.Errorf("no-match search = %+v, want empty list", got)
	}
}

func TestDiskMediaDelete(t *testing.T) {
	svc, uploads := newDiskMedia(t)
	ctx := context.Background()
	f, _ := svc.Upload(ctx, "plan.pdf", "application/pdf", strings.NewReader("pdf"))

	if err := svc.Delete(ctx, f.FileID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(uploads, f.FileID+".pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still on disk: %v", err)
	}
	if err := svc.Delete(ctx, f.FileID); !errors.Is(err, ErrMediaNotFound) {
		t.Errorf("second delete = %v", err)
	}
}

func TestDiskMediaIndexSurvivesRestart(t *testing.T) {
	root := t.TempDir()
	uploads, data := filepath.Join(root, "uploads"), filepath.Join(root, "data")
	svc, _ := NewDiskMediaService(uploads, data, "/uploads")
	f, _ := svc.Upload(context.Background(), "garden.webp", "image/webp", strings.NewReader("webp"))

	reopened, err := NewDiskMediaService(uploads, data, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	got, _ := reopened.Search(context.Background(), "garden")
	if len(got) != 1 || got[0].FileID != f.FileID {
		t.Errorf("after restart = %+v", got)
	}
}

func TestIsAllowedMedia(t *testing.T) {
	tests := map[string]bool{
		"image/jpeg":               true,
		"image/png; charset=utf-8": true,
		"video/mp4":                true,
		"application/pdf":          true,
		"text/html":                false,
		"":                         false,
	}
	for mt, want := range tests {
		if got := IsAllowedMedia(mt); got != want {
			t.Errorf("IsAllowedMedia(%q) = %v, want %v", mt, got, want)
		}
	}
}

func TestSafeSearchIsUnsafe(t *testing.T) {
	tests := []struct {
		r    SafeSearchResult
		want bool
	}{
		{SafeSearchResult{}, false},
		{SafeSearchResult{Adult: "POSSIBLE", Racy: "UNLIKELY"}, false},
		{SafeSearchResult{Adult: "LIKELY"}, true},
		{SafeSearchResult{Violence: "VERY_LIKELY"}, true},
		{SafeSearchResult{Racy: "LIKELY"}, true},
		{SafeSearchResult{Spoof: "VERY_LIKELY", Medical: "VERY_LIKELY"}, false},
	}
	for _, tt := range tests {
		if got := tt.r.IsUnsafe(); got != tt.want {
			t.Errorf("%+v IsUnsafe = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestDownloadURL(t *testing.T) {
	got := downloadURL("estately.appspot.com", "media/abc.jpg", "tok en")
	want := "https://firebasestorage.googleapis.com/v0/b/estately.appspot.com/o/media%2Fabc.jpg?alt=media&token=tok+en"
	if got != want {
		t.Errorf("downloadURL = %q", got)
	}
}
