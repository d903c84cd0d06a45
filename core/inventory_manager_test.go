package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"wineconfig/core"
)

type fakeScanner struct {
	mu         sync.Mutex
	scanCustom []bool
	runtimes   []core.RuntimeRecord
	err        error
}

func (s *fakeScanner) GetAlternativeWine(ctx context.Context, scanCustom bool) ([]core.RuntimeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scanCustom = append(s.scanCustom, scanCustom)
	return s.runtimes, s.err
}

var protonRuntime = core.RuntimeRecord{
	Bin:  "/opt/GE-Proton9/proton",
	Name: "Proton - GE-Proton9",
	Type: core.RuntimeProton,
}

func TestInventoryManager_RequestDiscovery(t *testing.T) {
	defer goleak.VerifyNone(t)

	scanner := &fakeScanner{runtimes: []core.RuntimeRecord{protonRuntime}}
	im := core.NewInventoryManager(scanner)
	defer im.Stop()

	runtimes, err := im.RequestDiscovery(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, []core.RuntimeRecord{protonRuntime}, runtimes)

	_, err = im.RequestDiscovery(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, scanner.scanCustom)
}

func TestInventoryManager_RequestDiscoveryNonBlocking(t *testing.T) {
	defer goleak.VerifyNone(t)

	scanner := &fakeScanner{runtimes: []core.RuntimeRecord{protonRuntime}}
	im := core.NewInventoryManager(scanner)
	defer im.Stop()

	res := make(chan core.InventoryResult)
	im.RequestDiscoveryNonBlocking(context.Background(), true, res)

	result := <-res
	require.NoError(t, result.Err)
	assert.Equal(t, []core.RuntimeRecord{protonRuntime}, result.Runtimes)

	// fire and forget
	im.RequestDiscoveryNonBlocking(context.Background(), false, nil)
}

func TestInventoryManager_PropagatesErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	scanError := errors.New("scan failed")
	im := core.NewInventoryManager(&fakeScanner{err: scanError})
	defer im.Stop()

	_, err := im.RequestDiscovery(context.Background(), true)
	assert.ErrorIs(t, err, scanError)
}

func TestInventoryManager_CancelledRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	scanner := &fakeScanner{}
	im := core.NewInventoryManager(scanner)
	defer im.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := im.RequestDiscovery(ctx, true)
	assert.ErrorIs(t, err, context.Canceled)

	res := make(chan core.InventoryResult, 1)
	im.RequestDiscoveryNonBlocking(ctx, true, res)
	assert.ErrorIs(t, (<-res).Err, context.Canceled)

	assert.Empty(t, scanner.scanCustom)
}

func TestInventoryManager_DiscoversHostRuntimes(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, _ := setupLinuxRuntimes(t)
	im := core.NewInventoryManager(core.NewRuntimeDiscovery(h, core.NewConfigManager(h)))
	defer im.Stop()

	runtimes, err := im.RequestDiscovery(context.Background(), true)
	require.NoError(t, err)
	require.NotEmpty(t, runtimes)
	assert.Equal(t, "Wine Default - wine-9.0", runtimes[0].Name)
}

func TestInventoryManager_StopWithUnreadResults(t *testing.T) {
	defer goleak.VerifyNone(t)

	im := core.NewInventoryManager(&fakeScanner{runtimes: []core.RuntimeRecord{protonRuntime}})

	// nobody ever receives from these
	im.RequestDiscoveryNonBlocking(context.Background(), true, make(chan core.InventoryResult))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	im.RequestDiscoveryNonBlocking(ctx, true, make(chan core.InventoryResult))

	stopped := make(chan struct{})
	go func() {
		im.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return while results were unread")
	}
}
