package reactor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// actionSignature computes a deterministic signature for a dispatched action
// (name + hash of arguments). json.Marshal sorts map keys, so equal argument
// maps hash equally.
func actionSignature(name string, args map[string]any) string {
	raw, _ := json.Marshal(args)
	h := sha256.Sum256(raw)
	return fmt.Sprintf("%s:%x", name, h[:8])
}

// DetectRepeatedActions checks whether the last windowSize action signatures
// follow a repeating pattern of length 1, 2, or 3. The loop controller logs a
// warning when this fires; it does not change control flow.
func DetectRepeatedActions(sigs []string, windowSize int) bool {
	if len(sigs) < windowSize || windowSize <= 0 {
		return false
	}
	window := sigs[len(sigs)-windowSize:]

	for patternLen := 1; patternLen <= 3; patternLen++ {
		if windowSize%patternLen != 0 {
			continue
		}
		pattern := window[:patternLen]
		allMatch := true
		for i := patternLen; i < windowSize && allMatch; i += patternLen {
			for j := 0; j < patternLen; j++ {
				if window[i+j] != pattern[j] {
					allMatch = false
					break
				}
			}
		}
		if allMatch {
			return true
		}
	}

	return false
}
