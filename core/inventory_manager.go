package core

import (
	"context"
	"sync"
)

// RuntimeScanner produces the runtime inventory.
type RuntimeScanner interface {
	GetAlternativeWine(ctx context.Context, scanCustom bool) ([]RuntimeRecord, error)
}

type InventoryResult struct {
	Runtimes []RuntimeRecord
	Err      error
}

type DiscoveryRequest struct {
	ctx        context.Context
	scanCustom bool
	response   chan InventoryResult
}

// InventoryManager serves discovery requests from one goroutine so callers
// like the CLI and background refreshers share a single entry point.
type InventoryManager struct {
	syncRequests  chan DiscoveryRequest
	asyncRequests chan DiscoveryRequest
	quit          chan struct{}
	wg            sync.WaitGroup
	scanner       RuntimeScanner
}

func NewInventoryManager(scanner RuntimeScanner) *InventoryManager {
	im := &InventoryManager{
		syncRequests:  make(chan DiscoveryRequest),
		asyncRequests: make(chan DiscoveryRequest),
		quit:          make(chan struct{}),
		scanner:       scanner,
	}

	im.wg.Add(1)
	go im.run()

	return im
}

func (im *InventoryManager) run() {
	defer im.wg.Done()

	for {
		select {
		case req := <-im.syncRequests:
			req.response <- im.discover(req.ctx, req.scanCustom)
		case asyncReq := <-im.asyncRequests:
			im.wg.Add(1)
			go func() {
				defer im.wg.Done()
				result := im.discover(asyncReq.ctx, asyncReq.scanCustom)
				if asyncReq.response != nil {
					im.deliver(asyncReq.response, result)
				}
			}()
		case <-im.quit:
			return
		}
	}
}

func (im *InventoryManager) discover(ctx context.Context, scanCustom bool) InventoryResult {
	if err := ctx.Err(); err != nil {
		return InventoryResult{Err: err}
	}

	runtimes, err := im.scanner.GetAlternativeWine(ctx, scanCustom)
	if err != nil {
		Logger.Error("Runtime discovery failed", "err", err)
		return InventoryResult{Err: err}
	}

	Logger.Debug("Runtime discovery finished", "count", len(runtimes))
	return InventoryResult{Runtimes: runtimes}
}

// RequestDiscovery scans for runtimes and waits for the result.
func (im *InventoryManager) RequestDiscovery(ctx context.Context, scanCustom bool) ([]RuntimeRecord, error) {
	response := make(chan InventoryResult, 1)
	select {
	case im.syncRequests <- DiscoveryRequest{
		ctx:        ctx,
		scanCustom: scanCustom,
		response:   response,
	}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result := <-response
	return result.Runtimes, result.Err
}

// RequestDiscoveryNonBlocking queues a scan and returns. The result is sent
// on res when it is not nil; results nobody receives are dropped on Stop.
func (im *InventoryManager) RequestDiscoveryNonBlocking(ctx context.Context, scanCustom bool, res chan InventoryResult) {
	select {
	case im.asyncRequests <- DiscoveryRequest{
		ctx:        ctx,
		scanCustom: scanCustom,
		response:   res,
	}:
	case <-ctx.Done():
		if res != nil {
			im.wg.Add(1)
			go func() {
				defer im.wg.Done()
				im.deliver(res, InventoryResult{Err: ctx.Err()})
			}()
		}
	}
}

// deliver hands result to a non-blocking caller, giving up once the manager
// stops so an abandoned channel cannot hold Stop.
func (im *InventoryManager) deliver(res chan InventoryResult, result InventoryResult) {
	select {
	case res <- result:
	case <-im.quit:
	}
}

func (im *InventoryManager) Stop() {
	close(im.quit)
	im.wg.Wait()
}
