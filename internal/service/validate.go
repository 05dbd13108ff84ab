package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkordes/bikeshare-stats/internal/domain"
)

// cityVocabulary, monthVocabulary and dayVocabulary are the allowed values
// for each query field, in the order reported back in error messages.
var (
	cityVocabulary  = citiesAsStrings()
	monthVocabulary = append([]string{domain.AllValues}, domain.Months...)
	dayVocabulary   = append([]string{domain.AllValues}, domain.Days...)
)

func citiesAsStrings() []string {
	out := make([]string, len(domain.Cities))
	for i, c := range domain.Cities {
		out[i] = string(c)
	}
	return out
}

// Validate checks a raw request and returns the normalized Query.
// Fields are checked in the order city, month, day; the first invalid field
// fails the call with domain.ErrInvalidRequest.
func Validate(raw domain.RawRequest) (domain.Query, error) {
	if len(raw) == 0 {
		return domain.Query{}, fmt.Errorf("%w: expected a JSON object with city, month and day, got empty input", domain.ErrInvalidRequest)
	}

	city, err := vocabularyValue(raw, "city", cityVocabulary)
	if err != nil {
		return domain.Query{}, err
	}
	month, err := vocabularyValue(raw, "month", monthVocabulary)
	if err != nil {
		return domain.Query{}, err
	}
	day, err := vocabularyValue(raw, "day", dayVocabulary)
	if err != nil {
		return domain.Query{}, err
	}

	return domain.Query{City: domain.City(city), Month: month, Day: day}, nil
}

// vocabularyValue returns the trimmed, lower-cased value of raw[field] when it
// is a member of allowed.
func vocabularyValue(raw domain.RawRequest, field string, allowed []string) (string, error) {
	v, ok := raw[field]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidRequest, field)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be one of %q, got %v", domain.ErrInvalidRequest, field, allowed, v)
	}

	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if a == normalized {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("%w: %s must be one of %q, got %q", domain.ErrInvalidRequest, field, allowed, s)
}

// ParseStartIndex reads the optional start_index of a raw-data request.
// It returns 0 when the field is absent. Integers and integer strings are
// accepted; the range check belongs to Paginate.
func ParseStartIndex(raw domain.RawRequest) (int, error) {
	v, ok := raw["start_index"]
	if !ok || v == nil {
		return 0, nil
	}

	var text string
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		// 5.0 and 1e1 are JSON numbers with an integral value.
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: start_index must be an integer, got %s", domain.ErrInvalidRequest, n)
		}
		return integralIndex(f)
	case string:
		text = strings.TrimSpace(n)
	case float64:
		return integralIndex(n)
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: start_index must be an integer, got %v", domain.ErrInvalidRequest, v)
	}

	i, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: start_index must be an integer, got %q", domain.ErrInvalidRequest, text)
	}
	return i, nil
}

// maxIndex keeps float conversions exact; no view is that long.
const maxIndex = 1 << 53

func integralIndex(f float64) (int, error) {
	if f != math.Trunc(f) || math.Abs(f) > maxIndex {
		return 0, fmt.Errorf("%w: start_index must be an integer, got %v", domain.ErrInvalidRequest, f)
	}
	return int(f), nil
}
