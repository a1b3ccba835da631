package client

import (
	"context"
	"errors"
	"strings"

	"github.com/HugoJF/boxbox/internal/dto"
)

const (
	PendingName         = "Analyzing photo…"
	PendingDescription  = "We'll fill in these details shortly."
	FallbackName        = "New Item"
	EnrichmentProfile   = "fast"
	defaultItemQuantity = 1
)

var ErrBoxRequired = errors.New("box id is required")

// CaptureFlow turns a photo into an item without waiting on the model: the
// item is created with pending text right away and filled in by a background
// task.
type CaptureFlow struct {
	store    *Store
	notifier Notifier
}

func NewCaptureFlow(store *Store, notifier Notifier) *CaptureFlow {
	if notifier == nil {
		notifier = discardNotifier{}
	}
	return &CaptureFlow{store: store, notifier: notifier}
}

// Capture creates exactly one item in boxID and returns it as soon as the
// server has stored it. Enrichment runs on the store's task registry and is
// attempted once.
func (f *CaptureFlow) Capture(ctx context.Context, boxID, image string) (*Item, error) {
	if strings.TrimSpace(boxID) == "" {
		f.notifier.Error("Pick a box before capturing a photo", ErrBoxRequired)
		return nil, ErrBoxRequired
	}

	item, err := f.store.client.CreateItem(ctx, dto.ItemCreateDTO{
		BoxID:       boxID,
		Name:        PendingName,
		Description: PendingDescription,
		Quantity:    defaultItemQuantity,
		Image:       image,
	})
	if err != nil {
		f.notifier.Error("Failed to create item", err)
		return nil, err
	}
	f.store.cache.InsertOptimisticItem(*item)

	created := *item
	err = f.store.tasks.Start(created.ID, func(ctx context.Context, task *Task) error {
		return f.enrich(ctx, task, created, image)
	})
	if err != nil {
		f.notifier.Error("Could not start photo analysis", err)
	}
	return item, nil
}

func (f *CaptureFlow) enrich(ctx context.Context, task *Task, item Item, image string) error {
	update := fallbackUpdate()
	analysis, err := f.store.client.AnalyzeItem(ctx, image, EnrichmentProfile)
	switch {
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil:
		f.notifier.Error("Could not analyze photo, fill in the details manually", err)
	default:
		update = analysisUpdate(analysis)
	}

	err = task.Commit(func() error {
		patched, err := f.store.client.UpdateItem(context.WithoutCancel(ctx), item.ID, update)
		if err != nil {
			return err
		}
		f.store.cache.UpsertItem(*patched)
		return nil
	})
	if errors.Is(err, ErrTaskCancelled) {
		return err
	}
	if err != nil {
		f.notifier.Error("Could not update item", err)
		return err
	}
	f.store.cache.ItemSettled(item.BoxID)
	return nil
}

func fallbackUpdate() dto.ItemUpdateDTO {
	name := FallbackName
	description := ""
	quantity := defaultItemQuantity
	return dto.ItemUpdateDTO{Name: &name, Description: &description, Quantity: &quantity}
}

func analysisUpdate(analysis *Analysis) dto.ItemUpdateDTO {
	update := fallbackUpdate()
	if name := strings.TrimSpace(analysis.Name); name != "" {
		update.Name = &name
	}
	description := analysis.Description
	update.Description = &description
	if analysis.Quantity > 0 {
		quantity := analysis.Quantity
		update.Quantity = &quantity
	}
	return update
}
