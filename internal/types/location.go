package types

import "fmt"

// Place is a geocoding candidate for a searched name
type Place struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"` // region, optional
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Label is the suggestion row text: "name, country[, region]"
func (p Place) Label() string {
	if p.Admin1 != "" {
		return fmt.Sprintf("%s, %s, %s", p.Name, p.Country, p.Admin1)
	}
	return fmt.Sprintf("%s, %s", p.Name, p.Country)
}

// DisplayName is the heading shown above a forecast for this place
func (p Place) DisplayName() string {
	return fmt.Sprintf("%s, %s", p.Name, p.Country)
}

// Coords returns the place coordinates
func (p Place) Coords() Coords {
	return NewCoords(p.Latitude, p.Longitude)
}
