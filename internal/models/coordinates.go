package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Coordinates is a rectangle in image pixel space.
// Stored as a json column, so it implements Scanner and Valuer.
type Coordinates struct {
	X      float64 `json:"x" validate:"gte=0"`
	Y      float64 `json:"y" validate:"gte=0"`
	Width  float64 `json:"width" validate:"gte=0"`
	Height float64 `json:"height" validate:"gte=0"`
}

func (c *Coordinates) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("type assertion to []byte failed")
	}
}

func (c Coordinates) Value() (driver.Value, error) {
	bytes, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}
