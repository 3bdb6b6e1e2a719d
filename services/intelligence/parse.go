package ai

import (
	"errors"
	"regexp"
	"strings"

	"musa/utils"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var (
	errNoJSONArray  = errors.New("no JSON array in model output")
	codeFence       = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	structValidator = validator.New()
)

// candidate is one spot as emitted by the model.
type candidate struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Type        string    `json:"type" validate:"omitempty,oneof=artwork venue event collection"`
	Coordinates []*float64 `json:"coordinates"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Category    string    `json:"category"`
	Mood        []string  `json:"mood"`
	MusicGenres []string  `json:"musicGenres"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	StartDate   *string   `json:"startDate"`
	EndDate     *string   `json:"endDate"`
}

// decodeCandidates extracts the first JSON array from raw model output and
// decodes it into typed candidates. Any shape mismatch fails the whole batch.
func decodeCandidates(raw string) ([]candidate, error) {
	body, err := extractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var out []candidate
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c candidate) validate() error {
	return structValidator.Struct(c)
}

// point returns the [lng, lat] pair. A null element counts as missing.
func (c candidate) point() (lng, lat float64, ok bool) {
	if len(c.Coordinates) != 2 || c.Coordinates[0] == nil || c.Coordinates[1] == nil {
		return 0, 0, false
	}
	lng, lat = *c.Coordinates[0], *c.Coordinates[1]
	return lng, lat, utils.ValidLatLng(lat, lng)
}

// extractJSONArray strips markdown fences and returns the first balanced
// [...] literal, ignoring brackets inside strings.
func extractJSONArray(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(s); len(m) > 1 {
		s = strings.TrimSpace(m[1])
	}

	start := strings.IndexByte(s, '[')
	if start == -1 {
		return "", errNoJSONArray
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errNoJSONArray
}
