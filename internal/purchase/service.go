// AngelaMos | 2026
// service.go

package purchase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vipinpawar/jeopardy-app/internal/catalog"
	"github.com/vipinpawar/jeopardy-app/internal/core"
	"github.com/vipinpawar/jeopardy-app/internal/mailer"
	"github.com/vipinpawar/jeopardy-app/internal/metrics"
	"github.com/vipinpawar/jeopardy-app/internal/pricing"
)

var (
	ErrEmptyCheckout = fmt.Errorf("no items to purchase: %w", core.ErrInvalidInput)
	ErrNoValidItems  = fmt.Errorf("no valid items found: %w", core.ErrInvalidInput)
	ErrItemNotFound  = fmt.Errorf("item: %w", core.ErrNotFound)
	ErrQuantityRange = fmt.Errorf("quantity must be at most %d: %w",
		pricing.MaxQuantity, core.ErrInvalidInput)
	ErrPriceOverflow = fmt.Errorf("line total out of range: %w", core.ErrInvalidInput)
)

type ItemLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]catalog.Item, error)
}

type TierSource interface {
	EffectiveTier(ctx context.Context, userID string) (pricing.Tier, error)
}

// Notifier delivers download links for purchased digital items.
type Notifier interface {
	NotifyDownloads(ctx context.Context, userID string, downloads []mailer.Download) error
}

type ServiceConfig struct {
	Store    Store
	Items    ItemLookup
	Tiers    TierSource
	Notifier Notifier
	Logger   *slog.Logger
}

type Service struct {
	store    Store
	items    ItemLookup
	tiers    TierSource
	notifier Notifier
	logger   *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    cfg.Store,
		items:    cfg.Items,
		tiers:    cfg.Tiers,
		notifier: cfg.Notifier,
		logger:   logger,
	}
}

// Checkout records one purchase per distinct item, priced at the buyer's
// effective tier. Either every record is written or none is. The cart is
// left untouched.
func (s *Service) Checkout(ctx context.Context, userID string, refs []ItemRef) ([]Record, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}

	merged, err := mergeRefs(refs)
	if err != nil {
		return nil, err
	}
	if len(merged) == 0 {
		return nil, ErrEmptyCheckout
	}

	ctx, span := core.StartSpan(ctx, "purchase.checkout",
		attribute.String("user.id", userID),
		attribute.Int("checkout.lines", len(merged)),
	)
	defer span.End()

	tier, err := s.tiers.EffectiveTier(ctx, userID)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	ids := make([]string, 0, len(merged))
	for _, ref := range merged {
		ids = append(ids, ref.ItemID)
	}

	items, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}
	byID := make(map[string]*catalog.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	records := make([]Record, 0, len(merged))
	var downloads []mailer.Download
	for _, ref := range merged {
		item, ok := byID[ref.ItemID]
		if !ok {
			continue
		}

		unit := pricing.ResolveFor(item, tier)
		paid, ok := pricing.LineTotal(unit, ref.Quantity)
		if !ok {
			core.SetSpanError(ctx, ErrPriceOverflow)
			return nil, ErrPriceOverflow
		}
		records = append(records, Record{
			UserID:     userID,
			ItemID:     item.ID,
			Quantity:   ref.Quantity,
			UnitPrice:  unit,
			PricePaid:  paid,
			Membership: tier,
			Status:     StatusCompleted,
		})
		if item.HasDownload() {
			downloads = append(downloads, mailer.Download{Name: item.Name, URL: *item.DownloadURL})
		}
	}
	if len(records) == 0 {
		return nil, ErrNoValidItems
	}

	err = s.store.InTx(ctx, func(repo Repository) error {
		for i := range records {
			if err := repo.Insert(ctx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	for _, rec := range records {
		metrics.ObserveCheckout(rec.Membership.String(), rec.PricePaid)
	}
	span.SetAttributes(attribute.String("membership", tier.String()))

	s.notify(ctx, userID, downloads)

	return records, nil
}

func (s *Service) notify(ctx context.Context, userID string, downloads []mailer.Download) {
	if len(downloads) == 0 || s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyDownloads(ctx, userID, downloads); err != nil {
		core.AddSpanEvent(ctx, "notify.failed")
		s.logger.WarnContext(ctx, "download notification failed",
			"user_id", userID,
			"downloads", len(downloads),
			"error", err,
		)
	}
}

func (s *Service) Orders(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, core.ErrUnauthorized
	}
	return s.store.ListByUser(ctx, userID)
}

// mergeRefs folds duplicate item ids, preserving first-seen order.
// Quantities below one count as one; malformed ids are dropped. A line
// above pricing.MaxQuantity, before or after merging, is rejected.
func mergeRefs(refs []ItemRef) ([]ItemRef, error) {
	index := make(map[string]int, len(refs))
	out := make([]ItemRef, 0, len(refs))

	for _, ref := range refs {
		if _, err := uuid.Parse(ref.ItemID); err != nil {
			continue
		}
		qty := ref.Quantity
		if qty < 1 {
			qty = 1
		}
		if qty > pricing.MaxQuantity {
			return nil, ErrQuantityRange
		}
		if i, ok := index[ref.ItemID]; ok {
			if out[i].Quantity > pricing.MaxQuantity-qty {
				return nil, ErrQuantityRange
			}
			out[i].Quantity += qty
			continue
		}
		index[ref.ItemID] = len(out)
		out = append(out, ItemRef{ItemID: ref.ItemID, Quantity: qty})
	}

	return out, nil
}
