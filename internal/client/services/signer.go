package services

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dmitrijs2005/gesturetalk/internal/client/models"
	"github.com/dmitrijs2005/gesturetalk/internal/common"
)

const (
	MinPlaybackSpeed = 0.5
	MaxPlaybackSpeed = 2.0

	// BaseFrameDuration is how long one sign is shown at normal speed.
	BaseFrameDuration = 3 * time.Second
)

// Signer turns text into a sequence of sign frames.
type Signer interface {
	Translate(text string, speed float64) ([]models.SignFrame, error)
}

type signer struct {
	dict Dictionary
}

func NewSigner(dict Dictionary) Signer {
	return &signer{dict: dict}
}

// Translate splits text into words, one frame per word. A word is known when
// the dictionary has an entry for it; surrounding punctuation is ignored for
// the lookup.
func (s *signer) Translate(text string, speed float64) ([]models.SignFrame, error) {
	if speed < MinPlaybackSpeed || speed > MaxPlaybackSpeed {
		return nil, fmt.Errorf("%w: playback speed %v out of range", common.ErrorValidation, speed)
	}

	frameDuration := time.Duration(float64(BaseFrameDuration) / speed)

	words := strings.Fields(text)
	frames := make([]models.SignFrame, 0, len(words))
	for _, w := range words {
		f := models.SignFrame{Word: w, Duration: frameDuration}
		key := strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if e, ok := s.dict.Lookup(key); ok {
			f.Known = true
			f.EntryID = e.ID
		}
		frames = append(frames, f)
	}
	return frames, nil
}
