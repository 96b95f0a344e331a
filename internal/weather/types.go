// Package weather is the HTTP client for the third-party weather API
// (search.json for city suggestions, current.json for conditions).
package weather

// Location is one match returned by the search endpoint
type Location struct {
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Snapshot is the display-ready record of one location's current conditions
type Snapshot struct {
	City                  string  `json:"city"`
	Condition             string  `json:"condition"`
	LocalTime             string  `json:"localTime"`
	TemperatureCelsius    float64 `json:"temperatureCelsius"`
	TemperatureFahrenheit float64 `json:"temperatureFahrenheit"`
	FeelsLikeCelsius      float64 `json:"feelsLikeCelsius"`
	FeelsLikeFahrenheit   float64 `json:"feelsLikeFahrenheit"`
	Humidity              float64 `json:"humidity"`
	WindSpeedKph          float64 `json:"windSpeedKph"`
	WindSpeedMph          float64 `json:"windSpeedMph"`
}

// UniqueNames extracts location names, keeping the first occurrence of each
func UniqueNames(locations []Location) []string {
	names := make([]string, 0, len(locations))
	seen := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		if _, dup := seen[loc.Name]; dup {
			continue
		}
		seen[loc.Name] = struct{}{}
		names = append(names, loc.Name)
	}
	return names
}
