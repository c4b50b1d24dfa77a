package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/repository"
)

// Store is an in-memory implementation of repository.Store. It is the
// authoritative store for single-node runs and the fixture store for tests.
// Record-level consistency is guarded by one mutex; transactional grouping
// of records is the engine's job via its per-user locks.
type Store struct {
	mu sync.RWMutex

	nextID int64

	users       map[int64]*domain.User
	usersByName map[string]int64

	floors map[int64]*domain.Floor
	plots  map[int64]*domain.Plot

	seeds map[int64]*domain.SeedInstance
	pots  map[int64]*domain.PotInstance

	listings map[int64]*domain.Listing

	catalog map[string]int64

	sessions map[string]int64

	audit []auditRecord
}

type auditRecord struct {
	UserID  int64
	Action  string
	Payload []byte
	At      int64
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		users:       make(map[int64]*domain.User),
		usersByName: make(map[string]int64),
		floors:      make(map[int64]*domain.Floor),
		plots:       make(map[int64]*domain.Plot),
		seeds:       make(map[int64]*domain.SeedInstance),
		pots:        make(map[int64]*domain.PotInstance),
		listings:    make(map[int64]*domain.Listing),
		catalog:     make(map[string]int64),
		sessions:    make(map[string]int64),
	}
}

func (s *Store) nextSeq() int64 {
	s.nextID++
	return s.nextID
}

// --- Users ---

func (s *Store) GetOrCreateUser(ctx context.Context, username string, startingCoins int64, now int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(username)
	if id, ok := s.usersByName[key]; ok {
		u := *s.users[id]
		return &u, nil
	}

	u := &domain.User{
		ID:        s.nextSeq(),
		Username:  username,
		Coins:     startingCoins,
		CreatedAt: now,
	}
	s.users[u.ID] = u
	s.usersByName[key] = u.ID
	out := *u
	return &out, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *Store) AddCoins(ctx context.Context, userID int64, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Coins += delta
	if u.Coins < 0 {
		u.Coins = 0
	}
	return nil
}

func (s *Store) ListRecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Gardens ---

func (s *Store) CreateFloor(ctx context.Context, userID int64, idx, plots int) (*domain.Floor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	// floor indexes are unique per user; creating an existing index is a
	// no-op returning the existing floor, mirroring INSERT OR IGNORE
	for _, f := range s.floors {
		if f.UserID == userID && f.Idx == idx {
			out := *f
			return &out, nil
		}
	}

	f := &domain.Floor{
		ID:       s.nextSeq(),
		UserID:   userID,
		Idx:      idx,
		Unlocked: true,
	}
	s.floors[f.ID] = f
	for slot := 1; slot <= plots; slot++ {
		p := &domain.Plot{
			ID:      s.nextSeq(),
			FloorID: f.ID,
			Slot:    slot,
			Stage:   domain.StageEmpty,
		}
		s.plots[p.ID] = p
	}
	out := *f
	return &out, nil
}

func (s *Store) GetFloor(ctx context.Context, floorID int64) (*domain.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.floors[floorID]
	if !ok {
		return nil, domain.ErrFloorNotFound
	}
	out := *f
	return &out, nil
}

func (s *Store) ListFloors(ctx context.Context, userID int64) ([]domain.Floor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Floor{}
	for _, f := range s.floors {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Idx < out[j].Idx })
	return out, nil
}

func (s *Store) CountUnlockedFloors(ctx context.Context, userID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, f := range s.floors {
		if f.UserID == userID && f.Unlocked {
			n++
		}
	}
	return n, nil
}

func (s *Store) GetPlot(ctx context.Context, plotID int64) (*domain.Plot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.plots[plotID]
	if !ok {
		return nil, domain.ErrPlotNotFound
	}
	out := clonePlot(p)
	return &out, nil
}

func (s *Store) GetPlotBySlot(ctx context.Context, floorID int64, slot int) (*domain.Plot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plots {
		if p.FloorID == floorID && p.Slot == slot {
			out := clonePlot(p)
			return &out, nil
		}
	}
	return nil, domain.ErrPlotNotFound
}

func (s *Store) ListPlots(ctx context.Context, floorID int64) ([]domain.Plot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Plot{}
	for _, p := range s.plots {
		if p.FloorID == floorID {
			out = append(out, clonePlot(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (s *Store) ListInProgressPlots(ctx context.Context) ([]domain.GrowingPlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.GrowingPlot{}
	for _, p := range s.plots {
		if p.Stage != domain.StagePlanted && p.Stage != domain.StageGrowing {
			continue
		}
		f, ok := s.floors[p.FloorID]
		if !ok {
			continue
		}
		out = append(out, domain.GrowingPlot{Plot: clonePlot(p), OwnerID: f.UserID})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plot.ID < out[j].Plot.ID })
	return out, nil
}

func (s *Store) SetPlotPot(ctx context.Context, plotID, potID int64, potType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plots[plotID]
	if !ok {
		return domain.ErrPlotNotFound
	}
	pt := potType
	p.PotID = &potID
	p.PotType = &pt
	return nil
}

func (s *Store) SetPlotPlanted(ctx context.Context, plotID, seedID int64, class string, plantedAt, matureAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plots[plotID]
	if !ok {
		return domain.ErrPlotNotFound
	}
	c := class
	pa, ma := plantedAt, matureAt
	p.SeedID = &seedID
	p.Class = &c
	p.Stage = domain.StagePlanted
	p.PlantedAt = &pa
	p.MatureAt = &ma
	return nil
}

func (s *Store) SetPlotStage(ctx context.Context, plotID int64, stage domain.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plots[plotID]
	if !ok {
		return domain.ErrPlotNotFound
	}
	p.Stage = stage
	return nil
}

func (s *Store) ClearPlotCrop(ctx context.Context, plotID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plots[plotID]
	if !ok {
		return domain.ErrPlotNotFound
	}
	p.SeedID = nil
	p.Class = nil
	p.Stage = domain.StageEmpty
	p.PlantedAt = nil
	p.MatureAt = nil
	return nil
}

func (s *Store) ClearPlot(ctx context.Context, plotID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plots[plotID]
	if !ok {
		return domain.ErrPlotNotFound
	}
	p.PotID = nil
	p.PotType = nil
	p.SeedID = nil
	p.Class = nil
	p.Stage = domain.StageEmpty
	p.PlantedAt = nil
	p.MatureAt = nil
	return nil
}

func (s *Store) AddTrap(ctx context.Context, floorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.floors[floorID]
	if !ok {
		return domain.ErrFloorNotFound
	}
	f.TrapCount++
	return nil
}

func (s *Store) ConsumeTrap(ctx context.Context, floorID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.floors[floorID]
	if !ok {
		return false, domain.ErrFloorNotFound
	}
	if f.TrapCount <= 0 {
		return false, nil
	}
	f.TrapCount--
	return true, nil
}

// --- Inventory ---

func (s *Store) AddSeed(ctx context.Context, userID int64, class string, basePrice int64, mature bool) (*domain.SeedInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := &domain.SeedInstance{
		ID:        s.nextSeq(),
		UserID:    userID,
		Class:     class,
		BasePrice: basePrice,
		Mature:    mature,
	}
	s.seeds[seed.ID] = seed
	out := *seed
	return &out, nil
}

func (s *Store) GetSeed(ctx context.Context, seedID, userID int64) (*domain.SeedInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seed, ok := s.seeds[seedID]
	if !ok || seed.UserID != userID {
		return nil, domain.ErrSeedNotFound
	}
	out := *seed
	return &out, nil
}

func (s *Store) ListSeeds(ctx context.Context, userID int64) ([]domain.SeedInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.SeedInstance{}
	for _, seed := range s.seeds {
		if seed.UserID == userID {
			out = append(out, *seed)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RemoveSeed(ctx context.Context, seedID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed, ok := s.seeds[seedID]
	if !ok || seed.UserID != userID {
		return domain.ErrSeedNotFound
	}
	delete(s.seeds, seedID)
	return nil
}

func (s *Store) AddPot(ctx context.Context, userID int64, potType string, speedMult, yieldMult float64) (*domain.PotInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pot := &domain.PotInstance{
		ID:        s.nextSeq(),
		UserID:    userID,
		Type:      potType,
		SpeedMult: speedMult,
		YieldMult: yieldMult,
	}
	s.pots[pot.ID] = pot
	out := *pot
	return &out, nil
}

func (s *Store) GetPot(ctx context.Context, potID, userID int64) (*domain.PotInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pot, ok := s.pots[potID]
	if !ok || pot.UserID != userID {
		return nil, domain.ErrPotNotFound
	}
	out := *pot
	return &out, nil
}

func (s *Store) ListPots(ctx context.Context, userID int64) ([]domain.PotInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.PotInstance{}
	for _, pot := range s.pots {
		if pot.UserID == userID {
			out = append(out, *pot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RemovePot(ctx context.Context, potID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pot, ok := s.pots[potID]
	if !ok || pot.UserID != userID {
		return domain.ErrPotNotFound
	}
	delete(s.pots, potID)
	return nil
}

// --- Market ---

func (s *Store) CreateListing(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := *l
	rec.ID = s.nextSeq()
	rec.Status = domain.ListingOpen
	s.listings[rec.ID] = &rec
	out := rec
	return &out, nil
}

func (s *Store) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	out := *l
	return &out, nil
}

func (s *Store) ListOpenListings(ctx context.Context, limit int) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Listing{}
	for _, l := range s.listings {
		if l.Status == domain.ListingOpen {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CloseListing(ctx context.Context, listingID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return false, domain.ErrListingNotFound
	}
	if l.Status != domain.ListingOpen {
		return false, nil
	}
	l.Status = domain.ListingSold
	return true, nil
}

// --- Catalog ---

func (s *Store) BasePrice(ctx context.Context, class string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	price, ok := s.catalog[strings.ToLower(class)]
	return price, ok, nil
}

func (s *Store) UpsertBasePrice(ctx context.Context, class string, price int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog[strings.ToLower(class)] = price
	return nil
}

// --- Sessions ---

func (s *Store) CreateSession(ctx context.Context, token string, userID int64, now int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = userID
	return nil
}

func (s *Store) GetSession(ctx context.Context, token string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[token]
	if !ok {
		return 0, domain.ErrSessionNotFound
	}
	return userID, nil
}

// --- Audit ---

func (s *Store) LogAction(ctx context.Context, userID int64, action string, payload []byte, at int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audit = append(s.audit, auditRecord{UserID: userID, Action: action, Payload: payload, At: at})
	return nil
}

// AuditCount reports how many audit records were written. Test helper.
func (s *Store) AuditCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.audit)
}

func clonePlot(p *domain.Plot) domain.Plot {
	out := *p
	out.PotID = cloneI64(p.PotID)
	out.PotType = cloneStr(p.PotType)
	out.SeedID = cloneI64(p.SeedID)
	out.Class = cloneStr(p.Class)
	out.PlantedAt = cloneI64(p.PlantedAt)
	out.MatureAt = cloneI64(p.MatureAt)
	return out
}

func cloneI64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneStr(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
