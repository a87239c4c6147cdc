package overlay

import (
	"encoding/json"

	"github.com/JaimeStill/pdf-editor/pkg/geometry"
)

// regionJSON is the wire form of a Region: the rectangle is flattened into
// left, top, right and bottom.
type regionJSON struct {
	ID       ID      `json:"id"`
	Page     int     `json:"page"`
	Text     string  `json:"text"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Right    float64 `json:"right"`
	Bottom   float64 `json:"bottom"`
	Modified bool    `json:"modified"`
	Attributes
}

func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(regionJSON{
		ID:         r.ID,
		Page:       r.Page,
		Text:       r.Text,
		Left:       r.Rect.Left,
		Top:        r.Rect.Top,
		Right:      r.Rect.Right,
		Bottom:     r.Rect.Bottom,
		Modified:   r.Modified,
		Attributes: r.Attributes,
	})
}

func (r *Region) UnmarshalJSON(data []byte) error {
	var w regionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = Region{
		ID:         w.ID,
		Page:       w.Page,
		Rect:       geometry.Rect{Left: w.Left, Top: w.Top, Right: w.Right, Bottom: w.Bottom},
		Text:       w.Text,
		Modified:   w.Modified,
		Attributes: w.Attributes,
	}
	return nil
}
