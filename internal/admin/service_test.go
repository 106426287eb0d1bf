package admin

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	"github.com/lucasmendez/pizzeria-backend/internal/media"
	"github.com/lucasmendez/pizzeria-backend/pkg/config"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
)

type stubSaver struct {
	ref string
	err error
}

func (s stubSaver) SaveImage(string, io.Reader) (string, error) {
	return s.ref, s.err
}

func testService(t *testing.T) (*Service, *catalog.Store) {
	t.Helper()
	store, err := catalog.NewStore(config.StorageConfig{
		DataDir:     t.TempDir(),
		CatalogFile: "pizza-data.json",
		ContactFile: "whatsapp-config.json",
		UploadsDir:  "uploads",
	}, config.WhatsAppConfig{DefaultNumber: "543516351524"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	saver, err := media.NewSaver(config.StorageConfig{DataDir: store.RootDir(), UploadsDir: "uploads", MaxUploadMB: 1})
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(store, saver, nil)
	if err != nil {
		t.Fatal(err)
	}
	return svc, store
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, nil, nil); err == nil {
		t.Fatal("expected error without store")
	}
}

func TestUpdateItem(t *testing.T) {
	t.Parallel()

	svc, store := testService(t)
	ctx := context.Background()

	err := svc.UpdateItem(ctx, "margherita", ItemUpdateInput{
		WholePrice:  dec("4500"),
		HalfPrice:   dec("2700"),
		Ingredients: "tomate, albahaca",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	item := store.ReadCatalog(ctx)["margherita"]
	if item.WholePrice == nil || !item.WholePrice.Equal(dec("4500")) {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestUpdateItemRejectsNegativePrices(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	err := svc.UpdateItem(context.Background(), "margherita", ItemUpdateInput{
		WholePrice: dec("-1"),
		HalfPrice:  dec("2700"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateImageFlipsReference(t *testing.T) {
	t.Parallel()

	store, err := catalog.NewStore(config.StorageConfig{
		DataDir:     t.TempDir(),
		CatalogFile: "pizza-data.json",
		ContactFile: "whatsapp-config.json",
		UploadsDir:  "uploads",
	}, config.WhatsAppConfig{}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	svc := &Service{store: store, media: stubSaver{ref: "uploads/image-123.png"}}

	ref, err := svc.UpdateImage(context.Background(), "margherita", "foto.png", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("update image failed: %v", err)
	}
	if ref != "uploads/image-123.png" {
		t.Fatalf("unexpected ref %q", ref)
	}
	if got := store.ReadCatalog(context.Background())["margherita"].ImageRef; got != ref {
		t.Fatalf("reference not flipped: %q", got)
	}
}

func TestUpdateImageSaverFailure(t *testing.T) {
	t.Parallel()

	svc, store := testService(t)
	svc.media = stubSaver{err: pkgerrors.New(pkgerrors.CodeValidation, "Solo se permiten archivos de imagen")}

	_, err := svc.UpdateImage(context.Background(), "margherita", "x.txt", strings.NewReader("text"))
	if err == nil {
		t.Fatal("expected saver error")
	}
	if ref := store.ReadCatalog(context.Background())["margherita"].ImageRef; ref != "" {
		t.Fatalf("failed save must not touch the catalog, got %q", ref)
	}
}

func TestUpdateImageNilPayload(t *testing.T) {
	t.Parallel()

	svc, _ := testService(t)
	_, err := svc.UpdateImage(context.Background(), "margherita", "x.png", nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "No se subió ningún archivo" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateContact(t *testing.T) {
	t.Parallel()

	svc, store := testService(t)
	ctx := context.Background()

	if err := svc.UpdateContact(ctx, "5491122334455"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := store.ReadContact(ctx).ContactNumber; got != "5491122334455" {
		t.Fatalf("unexpected number %q", got)
	}

	if err := svc.UpdateContact(ctx, "  "); err == nil {
		t.Fatal("expected validation error for blank number")
	}
}
