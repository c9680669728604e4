package audio

import (
	"errors"

	"github.com/ncruces/zenity"
)

// Choose asks the user for a song with a native file dialog.
// Cancelling returns an empty path and no error.
func Choose() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose a song for the paper"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
