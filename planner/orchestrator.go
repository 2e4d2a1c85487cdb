package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"tripplanner/entities"
	"tripplanner/pkg/log"

	"github.com/google/uuid"
)

type FlightOfferSource interface {
	SearchFlights(ctx context.Context, criteria entities.SearchCriteria) ([]entities.FlightOffer, error)
}

type HotelOfferSource interface {
	SearchHotels(ctx context.Context, criteria entities.SearchCriteria) ([]entities.HotelOffer, error)
}

type Metrics interface {
	IncSearches()
	IncProviderErrors(leg string)
	ObserveLegDuration(leg string, d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) IncSearches()                             {}
func (nopMetrics) IncProviderErrors(string)                 {}
func (nopMetrics) ObserveLegDuration(string, time.Duration) {}

type PlanStatus string

const (
	StatusIdle           PlanStatus = "idle"
	StatusSearching      PlanStatus = "searching"
	StatusSuccess        PlanStatus = "success"
	StatusPartialFailure PlanStatus = "partial_failure"
	StatusFailure        PlanStatus = "failure"
)

type LegStatus string

const (
	LegPending LegStatus = "pending"
	LegOK      LegStatus = "ok"
	LegFailed  LegStatus = "failed"
)

type flightLeg struct {
	status LegStatus
	offers []entities.FlightOffer
	result FilterResult[entities.FlightOffer]
	err    error
}

type hotelLeg struct {
	status LegStatus
	offers []entities.HotelOffer
	result FilterResult[entities.HotelOffer]
	err    error
}

// Plan is one trip-planning session: the latest search criteria, both leg
// results and the user's selection. All mutation happens under mu, and only
// through explicit submit/select/reset calls - a response from a superseded
// search can never touch it.
type Plan struct {
	ID uuid.UUID

	mu        sync.Mutex
	searchSeq uint64
	status    PlanStatus
	criteria  entities.SearchCriteria
	flights   flightLeg
	hotels    hotelLeg
	tracker   *SelectionTracker
}

type Orchestrator struct {
	flights    FlightOfferSource
	hotels     HotelOfferSource
	rates      entities.RateTable
	legTimeout time.Duration
	metrics    Metrics

	mu    sync.RWMutex
	plans map[uuid.UUID]*Plan
}

func NewOrchestrator(flights FlightOfferSource, hotels HotelOfferSource, rates entities.RateTable, legTimeout time.Duration, metrics Metrics) *Orchestrator {
	if flights == nil {
		panic("flight offer source is nil")
	}
	if hotels == nil {
		panic("hotel offer source is nil")
	}
	if len(rates) == 0 {
		panic("rate table is empty")
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Orchestrator{
		flights:    flights,
		hotels:     hotels,
		rates:      rates,
		legTimeout: legTimeout,
		metrics:    metrics,
		plans:      map[uuid.UUID]*Plan{},
	}
}

// CreatePlan registers a new planning session and runs its first search.
func (o *Orchestrator) CreatePlan(ctx context.Context, criteria entities.SearchCriteria) (PlanSnapshot, error) {
	if err := criteria.Validate(); err != nil {
		return PlanSnapshot{}, err
	}

	plan := &Plan{
		ID:      uuid.New(),
		status:  StatusIdle,
		tracker: NewSelectionTracker(o.rates),
	}

	o.mu.Lock()
	o.plans[plan.ID] = plan
	o.mu.Unlock()

	return o.Submit(ctx, plan.ID, criteria)
}

func (o *Orchestrator) plan(planID uuid.UUID) (*Plan, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	plan, ok := o.plans[planID]
	if !ok {
		return nil, entities.ErrPlanNotFound
	}
	return plan, nil
}

// Submit starts a new search on an existing plan. It supersedes any search
// still in flight: each leg goroutine captures the search sequence it was
// started for and its result is dropped if a newer submit bumped it.
func (o *Orchestrator) Submit(ctx context.Context, planID uuid.UUID, criteria entities.SearchCriteria) (PlanSnapshot, error) {
	if err := criteria.Validate(); err != nil {
		return PlanSnapshot{}, err
	}

	plan, err := o.plan(planID)
	if err != nil {
		return PlanSnapshot{}, err
	}

	o.metrics.IncSearches()

	plan.mu.Lock()
	plan.searchSeq++
	seq := plan.searchSeq
	plan.criteria = criteria
	plan.status = StatusSearching
	plan.flights = flightLeg{status: LegPending}
	plan.hotels = hotelLeg{status: LegPending}
	plan.tracker.Reset()
	plan.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		o.searchFlightLeg(ctx, plan, seq, criteria)
	}()
	go func() {
		defer wg.Done()
		o.searchHotelLeg(ctx, plan, seq, criteria)
	}()
	wg.Wait()

	plan.mu.Lock()
	defer plan.mu.Unlock()

	if plan.searchSeq == seq {
		plan.status = aggregateStatus(plan.flights.status, plan.hotels.status)
	}

	return o.snapshotLocked(plan)
}

func (o *Orchestrator) searchFlightLeg(ctx context.Context, plan *Plan, seq uint64, criteria entities.SearchCriteria) {
	ctx, cancel := context.WithTimeout(ctx, o.legTimeout)
	defer cancel()

	start := time.Now()
	offers, err := o.flights.SearchFlights(ctx, criteria)
	o.metrics.ObserveLegDuration("flights", time.Since(start))

	leg := flightLeg{status: LegOK, offers: offers}
	if err != nil {
		o.metrics.IncProviderErrors("flights")
		log.FromContext(ctx).WithError(err).Error("Flight search failed")
		leg = flightLeg{status: LegFailed, err: asProviderError("flight search", err)}
	} else {
		leg.result, err = FilterFlights(offers, criteria.FlightBudget, o.rates)
		if err != nil {
			leg = flightLeg{status: LegFailed, err: err}
		}
	}

	plan.mu.Lock()
	defer plan.mu.Unlock()
	if plan.searchSeq != seq {
		// superseded by a newer search, drop silently
		return
	}
	plan.flights = leg
}

func (o *Orchestrator) searchHotelLeg(ctx context.Context, plan *Plan, seq uint64, criteria entities.SearchCriteria) {
	ctx, cancel := context.WithTimeout(ctx, o.legTimeout)
	defer cancel()

	start := time.Now()
	offers, err := o.hotels.SearchHotels(ctx, criteria)
	o.metrics.ObserveLegDuration("hotels", time.Since(start))

	leg := hotelLeg{status: LegOK, offers: offers}
	if err != nil {
		o.metrics.IncProviderErrors("hotels")
		log.FromContext(ctx).WithError(err).Error("Hotel search failed")
		leg = hotelLeg{status: LegFailed, err: asProviderError("hotel search", err)}
	} else {
		leg.result, err = FilterHotels(offers, criteria.HotelBudget, criteria.StayNights, o.rates)
		if err != nil {
			leg = hotelLeg{status: LegFailed, err: err}
		}
	}

	plan.mu.Lock()
	defer plan.mu.Unlock()
	if plan.searchSeq != seq {
		return
	}
	plan.hotels = leg
}

func asProviderError(op string, err error) error {
	var providerErr entities.ProviderError
	if errors.As(err, &providerErr) {
		return err
	}
	return entities.ProviderError{Op: op, Err: err}
}

func aggregateStatus(flights, hotels LegStatus) PlanStatus {
	switch {
	case flights == LegOK && hotels == LegOK:
		return StatusSuccess
	case flights == LegFailed && hotels == LegFailed:
		return StatusFailure
	default:
		return StatusPartialFailure
	}
}

// SelectFlight replaces the selected flight with an offer from the current
// results. An over-budget offer (reachable through the offer details view)
// needs the explicit override flag.
func (o *Orchestrator) SelectFlight(planID uuid.UUID, token string, override bool) (PlanSnapshot, error) {
	plan, err := o.plan(planID)
	if err != nil {
		return PlanSnapshot{}, err
	}

	plan.mu.Lock()
	defer plan.mu.Unlock()

	for _, offer := range plan.flights.offers {
		if offer.Token != token {
			continue
		}

		if !override {
			over, err := o.overBudget(offer.Price, plan.criteria.FlightBudget)
			if err != nil {
				return PlanSnapshot{}, err
			}
			if over {
				return PlanSnapshot{}, entities.ErrOverBudget
			}
		}

		plan.tracker.SelectFlight(offer)
		return o.snapshotLocked(plan)
	}

	return PlanSnapshot{}, entities.ErrOfferNotFound
}

// SelectHotel is the hotel counterpart of SelectFlight. The hotel budget is
// compared against the whole stay, not a single night.
func (o *Orchestrator) SelectHotel(planID uuid.UUID, offerID string, override bool) (PlanSnapshot, error) {
	plan, err := o.plan(planID)
	if err != nil {
		return PlanSnapshot{}, err
	}

	plan.mu.Lock()
	defer plan.mu.Unlock()

	for _, offer := range plan.hotels.offers {
		if offer.ID != offerID {
			continue
		}

		if !override {
			stay := offer.PricePerNight.Mul(plan.criteria.StayNights)
			over, err := o.overBudget(stay, plan.criteria.HotelBudget)
			if err != nil {
				return PlanSnapshot{}, err
			}
			if over {
				return PlanSnapshot{}, entities.ErrOverBudget
			}
		}

		plan.tracker.SelectHotel(offer)
		return o.snapshotLocked(plan)
	}

	return PlanSnapshot{}, entities.ErrOfferNotFound
}

func (o *Orchestrator) overBudget(price, budget entities.Money) (bool, error) {
	converted, err := budget.Convert(price.Currency, o.rates)
	if err != nil {
		return false, err
	}
	cmp, err := price.Cmp(converted)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

func (o *Orchestrator) Get(planID uuid.UUID) (PlanSnapshot, error) {
	plan, err := o.plan(planID)
	if err != nil {
		return PlanSnapshot{}, err
	}

	plan.mu.Lock()
	defer plan.mu.Unlock()
	return o.snapshotLocked(plan)
}

// Assemble snapshots the current selection into a TripPackage.
func (o *Orchestrator) Assemble(planID uuid.UUID) (entities.TripPackage, error) {
	plan, err := o.plan(planID)
	if err != nil {
		return entities.TripPackage{}, err
	}

	plan.mu.Lock()
	defer plan.mu.Unlock()
	return AssembleTrip(plan.tracker.Flight(), plan.tracker.Hotel(), plan.criteria.StayNights, o.rates)
}
