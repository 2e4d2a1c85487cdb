package api

import (
	"context"
	"sync"

	"tripplanner/entities"
)

type FlightsMock struct {
	mock sync.Mutex

	Offers   []entities.FlightOffer
	Err      error
	Searches []entities.SearchCriteria
}

func (m *FlightsMock) SearchFlights(ctx context.Context, criteria entities.SearchCriteria) ([]entities.FlightOffer, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.Searches = append(m.Searches, criteria)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Offers, nil
}

type HotelsMock struct {
	mock sync.Mutex

	Offers   []entities.HotelOffer
	Err      error
	Searches []entities.SearchCriteria
}

func (m *HotelsMock) SearchHotels(ctx context.Context, criteria entities.SearchCriteria) ([]entities.HotelOffer, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.Searches = append(m.Searches, criteria)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Offers, nil
}

type DestinationsMock struct {
	mock sync.Mutex

	Destination entities.Destination
	Err         error
	Queries     []string
}

func (m *DestinationsMock) Resolve(ctx context.Context, query string) (entities.Destination, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	m.Queries = append(m.Queries, query)
	if m.Err != nil {
		return entities.Destination{}, m.Err
	}
	return m.Destination, nil
}

type TripsMock struct {
	mock sync.Mutex

	ConfirmationID string
	Err            error
	Bookings       []entities.BookTripRequest
}

func (m *TripsMock) CreateBooking(ctx context.Context, request entities.BookTripRequest) (string, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.Err != nil {
		return "", m.Err
	}

	m.Bookings = append(m.Bookings, request)
	return m.ConfirmationID, nil
}
