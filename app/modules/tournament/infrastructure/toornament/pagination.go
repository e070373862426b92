package toornament

import (
	"fmt"
	"strconv"
	"strings"
)

// rangeStep is how far each follow-up Range request extends past the last
// upper bound.
const rangeStep = 49

// nextRange computes the Range header for the page after the one described
// by a Content-Range header such as "participants 0-49/120". ok is false
// once the collection is exhausted.
func nextRange(contentRange string, step int) (next string, ok bool, err error) {
	unit, span, found := strings.Cut(strings.TrimSpace(contentRange), " ")
	if !found {
		return "", false, fmt.Errorf("malformed Content-Range %q", contentRange)
	}
	bounds, totalText, found := strings.Cut(span, "/")
	if !found {
		return "", false, fmt.Errorf("malformed Content-Range %q", contentRange)
	}
	_, upperText, found := strings.Cut(bounds, "-")
	if !found {
		return "", false, fmt.Errorf("malformed Content-Range %q", contentRange)
	}

	upper, err := strconv.Atoi(upperText)
	if err != nil {
		return "", false, fmt.Errorf("malformed Content-Range %q: %w", contentRange, err)
	}
	total, err := strconv.Atoi(totalText)
	if err != nil {
		return "", false, fmt.Errorf("malformed Content-Range %q: %w", contentRange, err)
	}

	if upper >= total {
		return "", false, nil
	}
	lower := upper + 1
	if lower == total {
		return "", false, nil
	}
	upper = min(upper+step, total)
	return fmt.Sprintf("%s=%d-%d", unit, lower, upper), true, nil
}
