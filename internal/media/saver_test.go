package media

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
)

// Smallest payloads that sniff as their respective formats.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func testSaver(t *testing.T, maxMB int) *Saver {
	t.Helper()
	saver, err := NewSaver(config.StorageConfig{
		DataDir:     t.TempDir(),
		UploadsDir:  "uploads",
		MaxUploadMB: maxMB,
	})
	if err != nil {
		t.Fatalf("saver setup failed: %v", err)
	}
	return saver
}

func TestSaveImageAcceptsPNG(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 10)
	ref, err := saver.SaveImage("foto.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(ref, "uploads/image-") || !strings.HasSuffix(ref, ".png") {
		t.Fatalf("unexpected ref %q", ref)
	}

	raw, err := os.ReadFile(filepath.Join(saver.rootDir, filepath.FromSlash(ref)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if !bytes.Equal(raw, pngHeader) {
		t.Fatal("stored bytes must match the upload")
	}
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 10)
	_, err := saver.SaveImage("notes.txt", strings.NewReader("plain text, not pixels"))
	if err == nil {
		t.Fatal("expected rejection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "Solo se permiten archivos de imagen" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveImageContentTypeNotTrusted(t *testing.T) {
	t.Parallel()

	// A .png name carrying text content must still be rejected.
	saver := testSaver(t, 10)
	if _, err := saver.SaveImage("fake.png", strings.NewReader("<html>nope</html>")); err == nil {
		t.Fatal("expected sniffing to reject non-image bytes")
	}
}

func TestSaveImageRejectsEmpty(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 10)
	_, err := saver.SaveImage("foto.png", bytes.NewReader(nil))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "No se subió ningún archivo" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveImageRejectsOversize(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 1)
	payload := append(append([]byte{}, pngHeader...), make([]byte, 2<<20)...)
	_, err := saver.SaveImage("grande.png", bytes.NewReader(payload))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "El archivo es demasiado grande" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveImageUniqueNames(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 10)
	first, err := saver.SaveImage("a.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	second, err := saver.SaveImage("a.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("two uploads must never share a name")
	}
}

func TestSaveImageExtensionFromSniffWhenMissing(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 10)
	ref, err := saver.SaveImage("sin-extension", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(ref, ".png") {
		t.Fatalf("expected sniffed .png extension, got %q", ref)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	saver := testSaver(t, 10)
	ref, err := saver.SaveImage("a.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatal(err)
	}
	if err := saver.Remove(ref); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := saver.Remove(ref); err != nil {
		t.Fatalf("removing a missing file must not error: %v", err)
	}
	if err := saver.Remove("../outside"); err == nil {
		t.Fatal("path traversal must be rejected")
	}
}
