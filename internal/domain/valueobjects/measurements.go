package valueobjects

// Measurements are body dimensions in centimetres (weight in kilograms).
type Measurements struct {
	Height int `json:"height"`
	Weight int `json:"weight"`
	Chest  int `json:"chest"`
	Waist  int `json:"waist"`
	Hips   int `json:"hips"`
	Inseam int `json:"inseam"`
}

// DefaultMeasurements is placeholder data; it is not derived from any image.
func DefaultMeasurements() Measurements {
	return Measurements{
		Height: 175,
		Weight: 70,
		Chest:  95,
		Waist:  80,
		Hips:   95,
		Inseam: 80,
	}
}
