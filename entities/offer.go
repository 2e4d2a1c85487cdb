package entities

import (
	"encoding/json"
	"time"
)

// FlightOffer is a priced flight option returned by the provider. Offers are
// discarded and replaced on every search.
type FlightOffer struct {
	Token       string          `json:"token"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	DepartAt    time.Time       `json:"depart_at"`
	ArriveAt    time.Time       `json:"arrive_at"`
	Price       Money           `json:"price"`
	Raw         json.RawMessage `json:"-"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type HotelOffer struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	PricePerNight Money           `json:"price_per_night"`
	ReviewScore   float64         `json:"review_score"`
	PhotoURLs     []string        `json:"photo_urls"`
	Coordinates   Coordinates     `json:"coordinates"`
	Raw           json.RawMessage `json:"-"`
}

type Destination struct {
	ID      string `json:"dest_id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}
