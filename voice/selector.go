package voice

import (
	"fmt"
	"strings"
)

// SelectVoice picks one voice for the target language code with a three-tier
// fallback, first match wins on each tier:
//
//  1. language matches and gender matches the preferred gender,
//  2. language matches, any gender,
//  3. the first voice in the list.
//
// The scans are plain in-order walks over the slice as supplied; tie-break
// order is part of the contract. Fails only when the list is empty.
func SelectVoice(voices []Voice, targetLanguageCode, preferredGender string) (Voice, error) {
	if len(voices) == 0 {
		return Voice{}, fmt.Errorf("%w for language %q", ErrNoVoicesAvailable, targetLanguageCode)
	}

	for _, v := range voices {
		if strings.EqualFold(v.Language, targetLanguageCode) && strings.EqualFold(v.Gender, preferredGender) {
			return v, nil
		}
	}

	for _, v := range voices {
		if strings.EqualFold(v.Language, targetLanguageCode) {
			return v, nil
		}
	}

	return voices[0], nil
}
