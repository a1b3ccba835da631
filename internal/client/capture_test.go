package client

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/HugoJF/boxbox/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "data:image/png;base64,iVBORw0KGgo="

type recordingNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, message)
}

func (n *recordingNotifier) Error(message string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

func captureSetup(t *testing.T, model *stubModel) (*Store, *CaptureFlow, *recordingNotifier, *Box) {
	store := newTestStore(t, newTestAPI(t, model, nil))
	notifier := &recordingNotifier{}
	box, err := store.CreateBox(context.Background(), dto.BoxCreateDTO{Name: "Garage"})
	require.NoError(t, err)
	return store, NewCaptureFlow(store, notifier), notifier, box
}

func TestCapture_EnrichesItem(t *testing.T) {
	model := &stubModel{reply: `{"name":"  Cordless drill ","description":"Yellow","quantity":2.4}`}
	store, flow, notifier, box := captureSetup(t, model)
	ctx := context.Background()

	// Prime the caches the optimistic insert should touch.
	_, err := store.Box(ctx, box.ID)
	require.NoError(t, err)
	_, err = store.Items(ctx, "")
	require.NoError(t, err)

	item, err := flow.Capture(ctx, box.ID, testImage)
	require.NoError(t, err)
	assert.Equal(t, PendingName, item.Name)
	assert.Equal(t, PendingDescription, item.Description)
	assert.Equal(t, 1, item.Quantity)

	require.NoError(t, store.Tasks().Wait(ctx))

	final, err := store.Client().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cordless drill", final.Name)
	assert.Equal(t, "Yellow", final.Description)
	assert.Equal(t, 2, final.Quantity)
	assert.Equal(t, box.ID, final.BoxID)
	assert.Equal(t, testImage, final.Image)

	items, err := store.Client().ListItems(ctx, ItemsFilter{BoxID: box.ID})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, model.Calls())
	assert.Empty(t, notifier.Errors())

	detail, err := store.Box(ctx, box.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.ItemCount)
	assert.Equal(t, "Cordless drill", detail.Items[0].Name)
}

func TestCapture_OptimisticInsertIsVisibleBeforeEnrichment(t *testing.T) {
	model := &stubModel{reply: `{"name":"Drill","quantity":1}`, block: make(chan struct{})}
	store, flow, _, box := captureSetup(t, model)
	ctx := context.Background()
	_, err := store.Box(ctx, box.ID)
	require.NoError(t, err)

	item, err := flow.Capture(ctx, box.ID, testImage)
	require.NoError(t, err)

	cached, ok := Get[*BoxDetail](store.Cache(), BoxKey(box.ID))
	require.True(t, ok)
	assert.Equal(t, 1, cached.ItemCount)
	require.Len(t, cached.Items, 1)
	assert.Equal(t, item.ID, cached.Items[0].ID)
	assert.Equal(t, PendingName, cached.Items[0].Name)
	assert.True(t, store.Tasks().IsPending(item.ID))

	close(model.block)
	require.NoError(t, store.Tasks().Wait(ctx))
}

func TestCapture_AnalysisFailureFallsBack(t *testing.T) {
	model := &stubModel{err: errors.New("model unavailable")}
	store, flow, notifier, box := captureSetup(t, model)
	ctx := context.Background()

	item, err := flow.Capture(ctx, box.ID, testImage)
	require.NoError(t, err)
	require.NoError(t, store.Tasks().Wait(ctx))

	final, err := store.Client().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, FallbackName, final.Name)
	assert.Equal(t, "", final.Description)
	assert.Equal(t, 1, final.Quantity)
	assert.Len(t, notifier.Errors(), 1)
}

func TestCapture_InvalidReplyFallsBack(t *testing.T) {
	model := &stubModel{reply: `{"name":"","quantity":3}`}
	store, flow, _, box := captureSetup(t, model)
	ctx := context.Background()

	item, err := flow.Capture(ctx, box.ID, testImage)
	require.NoError(t, err)
	require.NoError(t, store.Tasks().Wait(ctx))

	final, err := store.Client().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, FallbackName, final.Name)
	assert.Equal(t, 1, final.Quantity)
}

func TestCapture_RequiresBox(t *testing.T) {
	model := &stubModel{}
	store, flow, notifier, box := captureSetup(t, model)
	ctx := context.Background()

	_, err := flow.Capture(ctx, "  ", testImage)

	assert.ErrorIs(t, err, ErrBoxRequired)
	assert.Len(t, notifier.Errors(), 1)
	assert.Equal(t, 0, store.Tasks().Pending())
	items, err := store.Client().ListItems(ctx, ItemsFilter{BoxID: box.ID})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, model.Calls())
}

func TestCapture_CreateFailureAborts(t *testing.T) {
	model := &stubModel{}
	store, flow, notifier, _ := captureSetup(t, model)

	_, err := flow.Capture(context.Background(), "unknown-box", testImage)

	assert.True(t, IsNotFound(err))
	assert.Equal(t, []string{"Failed to create item"}, notifier.Errors())
	assert.Equal(t, 0, store.Tasks().Pending())
	assert.Equal(t, 0, model.Calls())
}

func TestCapture_UserEditWins(t *testing.T) {
	model := &stubModel{reply: `{"name":"Drill","description":"From the model","quantity":5}`, block: make(chan struct{})}
	store, flow, _, box := captureSetup(t, model)
	ctx := context.Background()

	item, err := flow.Capture(ctx, box.ID, testImage)
	require.NoError(t, err)

	name := "Grandpa's drill"
	edited, err := store.UpdateItem(ctx, item.ID, dto.ItemUpdateDTO{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, edited.Name)
	assert.False(t, store.Tasks().IsPending(item.ID))

	close(model.block)
	require.NoError(t, store.Tasks().Wait(ctx))

	final, err := store.Client().GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, name, final.Name)
	assert.Equal(t, PendingDescription, final.Description)
	assert.Equal(t, 1, final.Quantity)

	cached, err := store.Item(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, name, cached.Name)
}
