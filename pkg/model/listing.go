package model

type Listing struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	Price       float64  `json:"price"`
	ReviewScore *float64 `json:"reviewScore,omitempty"`
}
