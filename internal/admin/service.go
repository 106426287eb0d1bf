package admin

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/lucasmendez/pizzeria-backend/internal/catalog"
	"github.com/lucasmendez/pizzeria-backend/internal/media"
	pkgerrors "github.com/lucasmendez/pizzeria-backend/pkg/errors"
	"github.com/lucasmendez/pizzeria-backend/pkg/logger"
)

type imageSaver interface {
	SaveImage(originalName string, r io.Reader) (string, error)
}

// Service is the admin update protocol: it validates inbound catalog
// edits before delegating to the store, so the store only ever sees
// well-formed updates.
type Service struct {
	store *catalog.Store
	media imageSaver
	logg  *logger.Logger
}

// NewService wires the protocol to its collaborators.
func NewService(store *catalog.Store, saver *media.Saver, logg *logger.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if saver == nil {
		return nil, fmt.Errorf("media saver required")
	}
	return &Service{store: store, media: saver, logg: logg}, nil
}

// ItemUpdateInput carries a price/ingredients edit. Prices arrive
// already parsed; the protocol re-checks the sign so a handler bug can
// not write a negative price.
type ItemUpdateInput struct {
	WholePrice  decimal.Decimal
	HalfPrice   decimal.Decimal
	Ingredients string
}

// UpdateItem validates and applies a price/ingredients edit.
func (s *Service) UpdateItem(ctx context.Context, id string, in ItemUpdateInput) error {
	if in.WholePrice.IsNegative() || in.HalfPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "los precios deben ser números no negativos")
	}
	if err := s.store.WriteItem(ctx, id, catalog.ItemUpdate{
		WholePrice:  in.WholePrice,
		HalfPrice:   in.HalfPrice,
		Ingredients: in.Ingredients,
	}); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithItemID(ctx, id), "catalog item updated")
	}
	return nil
}

// UpdateImage persists the uploaded payload, then flips the item's
// reference. The store deletes the replaced file afterwards, so the
// unsafe window is an orphaned file rather than a broken reference.
func (s *Service) UpdateImage(ctx context.Context, id, originalName string, payload io.Reader) (string, error) {
	if payload == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "No se subió ningún archivo")
	}
	ref, err := s.media.SaveImage(originalName, payload)
	if err != nil {
		return "", err
	}
	if err := s.store.SetItemImage(ctx, id, ref); err != nil {
		return "", err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"item_id": id, "image_ref": ref}), "catalog image replaced")
	}
	return ref, nil
}

// UpdateContact validates and stores the WhatsApp number.
func (s *Service) UpdateContact(ctx context.Context, number string) error {
	if err := s.store.WriteContact(ctx, number); err != nil {
		return err
	}
	if s.logg != nil {
		s.logg.Info(ctx, "whatsapp contact updated")
	}
	return nil
}
