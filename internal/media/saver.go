package media

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/multierr"

	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
)

var extensionsByMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Saver writes uploaded pizza images into the uploads directory with
// unique timestamped names. Only content that sniffs as an image is
// accepted; the declared Content-Type header is not trusted.
type Saver struct {
	rootDir    string
	uploadsDir string
	maxBytes   int64
}

// NewSaver ensures the uploads directory exists under the data root.
func NewSaver(cfg config.StorageConfig) (*Saver, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	uploads := filepath.Join(cfg.DataDir, cfg.UploadsDir)
	if err := os.MkdirAll(uploads, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &Saver{
		rootDir:    cfg.DataDir,
		uploadsDir: cfg.UploadsDir,
		maxBytes:   cfg.MaxUploadBytes(),
	}, nil
}

// SaveImage validates and persists one upload, returning the reference
// to record in the catalog (relative to the data root). originalName is
// only consulted for the extension; the stored name is generated.
func (s *Saver) SaveImage(originalName string, r io.Reader) (string, error) {
	payload, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "leyendo archivo")
	}
	if len(payload) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "No se subió ningún archivo")
	}
	if int64(len(payload)) > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "El archivo es demasiado grande")
	}

	detected := mimetype.Detect(payload)
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Solo se permiten archivos de imagen")
	}

	name := uniqueName(originalName, detected.String())
	ref := filepath.ToSlash(filepath.Join(s.uploadsDir, name))
	path := filepath.Join(s.rootDir, s.uploadsDir, name)

	if err := writeFile(path, payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeStorage, err, "guardando imagen")
	}
	return ref, nil
}

// Remove deletes a stored image by its catalog reference. Used by tests
// and cleanup paths; missing files are not an error.
func (s *Saver) Remove(ref string) error {
	clean := filepath.Clean(ref)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid image ref %q", ref)
	}
	if err := os.Remove(filepath.Join(s.rootDir, clean)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func writeFile(path string, payload []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	_, werr := f.Write(payload)
	return multierr.Append(werr, f.Close())
}

// uniqueName mirrors the historical upload naming:
// image-<unix millis>-<random>.<ext>.
func uniqueName(originalName, mime string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || len(ext) > 6 {
		ext = extensionsByMime[mime]
	}
	return fmt.Sprintf("image-%d-%d%s", time.Now().UnixMilli(), randomSuffix(), ext)
}

func randomSuffix() uint32 {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return uint32(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint32(buf[:]) % 1_000_000_000
}
