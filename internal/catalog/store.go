package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
	"github.com/lucasmendez/pizzeria-backend/pkg/jsondoc"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
	"github.com/lucasmendez/pizzeria-backend/pkg/metrics"
)

// Store owns the durable pizzeria state: the catalog document, the
// contact document, and the uploaded image files they reference. All
// mutations go through its read-modify-write path; concurrent admin
// edits resolve last-write-wins.
type Store struct {
	catalog        *jsondoc.Document
	contact        *jsondoc.Document
	rootDir        string
	fallbackNumber string
	logg           *logger.Logger
	metrics        *metrics.CatalogMetrics
}

// NewStore prepares the data directory and binds the two documents.
func NewStore(cfg config.StorageConfig, wa config.WhatsAppConfig, logg *logger.Logger, m *metrics.CatalogMetrics) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data dir is required")
	}
	uploads := filepath.Join(cfg.DataDir, cfg.UploadsDir)
	if err := os.MkdirAll(uploads, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}
	return &Store{
		catalog:        jsondoc.New(filepath.Join(cfg.DataDir, cfg.CatalogFile)),
		contact:        jsondoc.New(filepath.Join(cfg.DataDir, cfg.ContactFile)),
		rootDir:        cfg.DataDir,
		fallbackNumber: wa.DefaultNumber,
		logg:           logg,
		metrics:        m,
	}, nil
}

// RootDir exposes the directory image references are relative to.
func (s *Store) RootDir() string {
	return s.rootDir
}

// ReadCatalog returns the full catalog. A missing or unparsable
// document degrades to an empty mapping; the UI treats that as "no
// configured prices yet".
func (s *Store) ReadCatalog(ctx context.Context) Catalog {
	data := Catalog{}
	if err := s.catalog.Read(&data); err != nil {
		if !os.IsNotExist(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "catalog document unreadable, serving empty catalog")
		}
		return Catalog{}
	}
	if data == nil {
		return Catalog{}
	}
	return data
}

// WriteItem applies the admin-editable fields to one entry, creating it
// when absent. ImageRef is left untouched.
func (s *Store) WriteItem(ctx context.Context, id string, update ItemUpdate) error {
	if err := validateID(id); err != nil {
		s.metrics.IncFailure("write_item")
		return err
	}
	if update.WholePrice.IsNegative() || update.HalfPrice.IsNegative() {
		s.metrics.IncFailure("write_item")
		return pkgerrors.New(pkgerrors.CodeValidation, "los precios no pueden ser negativos")
	}

	data := Catalog{}
	err := s.catalog.Update(&data, func() error {
		item := data[id]
		whole := update.WholePrice
		half := update.HalfPrice
		item.WholePrice = &whole
		item.HalfPrice = &half
		item.Ingredients = update.Ingredients
		data[id] = item
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("write_item")
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "guardando catálogo")
	}
	s.metrics.IncSuccess("write_item")
	return nil
}

// SetItemImage flips the item's image reference to newRef and then
// removes the previously referenced file. The new file must already be
// on disk: write-new, flip-reference, delete-old, in that order, so a
// crash can only leave an orphaned file, never a dangling reference.
// Delete failure is cleanup debt, logged and non-fatal.
func (s *Store) SetItemImage(ctx context.Context, id, newRef string) error {
	if err := validateID(id); err != nil {
		s.metrics.IncFailure("set_item_image")
		return err
	}
	if strings.TrimSpace(newRef) == "" {
		s.metrics.IncFailure("set_item_image")
		return pkgerrors.New(pkgerrors.CodeValidation, "referencia de imagen requerida")
	}

	var oldRef string
	data := Catalog{}
	err := s.catalog.Update(&data, func() error {
		item := data[id]
		oldRef = item.ImageRef
		item.ImageRef = newRef
		data[id] = item
		return nil
	})
	if err != nil {
		s.metrics.IncFailure("set_item_image")
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "guardando catálogo")
	}

	if oldRef != "" && oldRef != newRef {
		s.removeImageFile(ctx, oldRef)
	}
	s.metrics.IncSuccess("set_item_image")
	return nil
}

func (s *Store) removeImageFile(ctx context.Context, ref string) {
	clean := filepath.Clean(ref)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return
	}
	path := filepath.Join(s.rootDir, clean)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"image_ref": ref,
				"error":     err.Error(),
			}), "could not remove replaced image")
		}
	}
}

// ReadContact returns the configured WhatsApp number, falling back to
// the default when the document is absent or unreadable.
func (s *Store) ReadContact(ctx context.Context) ContactConfig {
	cfg := ContactConfig{}
	if err := s.contact.Read(&cfg); err != nil {
		if !os.IsNotExist(err) && s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "contact document unreadable, serving default")
		}
		return ContactConfig{ContactNumber: s.fallbackNumber}
	}
	if strings.TrimSpace(cfg.ContactNumber) == "" {
		return ContactConfig{ContactNumber: s.fallbackNumber}
	}
	return cfg
}

// WriteContact replaces the contact number. Empty numbers are a
// validation error, not a storage error.
func (s *Store) WriteContact(ctx context.Context, number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		s.metrics.IncFailure("write_contact")
		return pkgerrors.New(pkgerrors.CodeValidation, "Número de WhatsApp requerido")
	}
	if err := s.contact.Write(ContactConfig{ContactNumber: number}); err != nil {
		s.metrics.IncFailure("write_contact")
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "guardando configuración de WhatsApp")
	}
	s.metrics.IncSuccess("write_contact")
	return nil
}

func validateID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "id de pizza requerido")
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("id de pizza inválido %q", id))
	}
	return nil
}
