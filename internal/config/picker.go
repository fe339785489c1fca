package config

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// Pick opens a native file dialog for a JSON config. A canceled dialog returns
// an empty path and no error.
func Pick() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Particle Config"),
		zenity.FileFilters{{
			Name:     "Config",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", fmt.Errorf("select config: %w", err)
	}
	return filename, nil
}
