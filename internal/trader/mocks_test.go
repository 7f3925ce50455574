package trader_test

import (
	"context"
	"sync"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// --- mocks compartidos por los tests del paquete ---

// fakeFeed devuelve una secuencia de snapshots en FixtureByID;
// el último elemento se repite cuando la secuencia se agota.
type fakeFeed struct {
	mu      sync.Mutex
	live    []domain.FixtureSnapshot
	liveErr error
	polls   []pollResult
	idx     int
}

type pollResult struct {
	snap domain.FixtureSnapshot
	ok   bool
	err  error
}

func (f *fakeFeed) LiveFixtures(_ context.Context) ([]domain.FixtureSnapshot, error) {
	return f.live, f.liveErr
}

func (f *fakeFeed) FixtureByID(_ context.Context, _ int64) (domain.FixtureSnapshot, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.polls) == 0 {
		return domain.FixtureSnapshot{}, false, nil
	}
	r := f.polls[f.idx]
	if f.idx < len(f.polls)-1 {
		f.idx++
	}
	return r.snap, r.ok, r.err
}

// fakeCatalogue devuelve siempre el mismo resultado, o bloquea hasta que el
// contexto se cancele si block=true.
type fakeCatalogue struct {
	mu      sync.Mutex
	markets []domain.MarketRef
	err     error
	block   bool
	calls   int
}

func (c *fakeCatalogue) SearchMarkets(ctx context.Context, _ string) ([]domain.MarketRef, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return c.markets, c.err
}

func (c *fakeCatalogue) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// fakeBooks devuelve una secuencia de books por llamada; el último se repite.
type fakeBooks struct {
	mu    sync.Mutex
	books []bookResult
	idx   int
}

type bookResult struct {
	book domain.MarketBook
	ok   bool
	err  error
}

func (b *fakeBooks) FetchMarketBook(_ context.Context, _ string) (domain.MarketBook, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.books) == 0 {
		return domain.MarketBook{}, false, nil
	}
	r := b.books[b.idx]
	if b.idx < len(b.books)-1 {
		b.idx++
	}
	return r.book, r.ok, r.err
}

// fakeExecutor registra cada orden y devuelve la respuesta configurada.
type fakeExecutor struct {
	mu     sync.Mutex
	orders []domain.PlaceOrderRequest
	placed domain.PlacedOrder
	err    error
}

func (e *fakeExecutor) PlaceOrder(_ context.Context, req domain.PlaceOrderRequest) (domain.PlacedOrder, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orders = append(e.orders, req)
	return e.placed, e.err
}

func (e *fakeExecutor) placedOrders() []domain.PlaceOrderRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.PlaceOrderRequest, len(e.orders))
	copy(out, e.orders)
	return out
}

// fakeNotifier acumula los mensajes enviados.
type fakeNotifier struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (n *fakeNotifier) Notify(_ context.Context, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)
	return n.err
}

// fakeStore registra candidatos, posiciones y outcomes.
type fakeStore struct {
	mu         sync.Mutex
	candidates []domain.Candidate
	positions  []domain.Position
	outcomes   map[string]domain.PositionOutcome
}

func newFakeStore() *fakeStore {
	return &fakeStore{outcomes: make(map[string]domain.PositionOutcome)}
}

func (s *fakeStore) SaveCandidate(_ context.Context, c domain.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = append(s.candidates, c)
	return nil
}

func (s *fakeStore) SavePosition(_ context.Context, p domain.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = append(s.positions, p)
	return nil
}

func (s *fakeStore) SaveOutcome(_ context.Context, positionID string, outcome domain.PositionOutcome, _ *domain.ExitTrigger, _ float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes[positionID] = outcome
	return nil
}

func (s *fakeStore) ListPositions(_ context.Context, _ int) ([]domain.PositionRecord, error) {
	return nil, nil
}

func (s *fakeStore) Close() error { return nil }

func (s *fakeStore) candidateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}
