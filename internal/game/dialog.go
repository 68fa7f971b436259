package game

import (
	"errors"
	"image/color"

	"github.com/ncruces/zenity"
)

// PickColor asks the user for the indicator tint. A cancelled dialog keeps
// the initial color and is not an error.
func PickColor(initial color.Color) (color.Color, error) {
	c, err := zenity.SelectColor(
		zenity.Title("Indicator color"),
		zenity.Color(initial),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return initial, nil
		}
		return initial, err
	}
	return c, nil
}
