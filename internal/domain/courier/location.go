package courier

// Location hierarchy for providers that require a delivery area resolved as
// city -> zone -> area, plus a pickup store. Records are validated at the
// adapter boundary so the rest of the system never sees untyped payloads.

// City is a top-level delivery region.
type City struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Zone is a subdivision of a city.
type Zone struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Area is a subdivision of a zone.
type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Store is a registered pickup location.
type Store struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// LocationSelection tracks a partially resolved delivery location. Changing
// an upstream level cascades: a new city clears zone and area, a new zone
// clears area.
type LocationSelection struct {
	CityID int
	ZoneID int
	AreaID int
}

// SelectCity sets the city and resets the downstream selections.
func (s *LocationSelection) SelectCity(cityID int) {
	if s.CityID != cityID {
		s.ZoneID = 0
		s.AreaID = 0
	}
	s.CityID = cityID
}

// SelectZone sets the zone and resets the area.
func (s *LocationSelection) SelectZone(zoneID int) {
	if s.ZoneID != zoneID {
		s.AreaID = 0
	}
	s.ZoneID = zoneID
}

// SelectArea sets the area.
func (s *LocationSelection) SelectArea(areaID int) {
	s.AreaID = areaID
}

// Complete reports whether every level has been selected.
func (s *LocationSelection) Complete() bool {
	return s.CityID != 0 && s.ZoneID != 0 && s.AreaID != 0
}
