package vocabulary

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

// Decode converts raw entries to typed entries. Every malformed entry is
// skipped and reported as an error wrapping domain.ErrMalformedEntry.
func Decode(raw []any) ([]domain.Entry, []error) {
	entries := make([]domain.Entry, 0, len(raw))
	var skipped []error
	for i, v := range raw {
		e, err := DecodeEntry(v)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped
}

// DecodeEntry decodes a single [word, frequency] pair or {word, frequency} map.
func DecodeEntry(v any) (domain.Entry, error) {
	var input any
	switch x := v.(type) {
	case domain.Entry:
		input = map[string]any{"word": x.Word, "frequency": x.Frequency}
	case []any:
		if len(x) != 2 {
			return domain.Entry{}, fmt.Errorf("%w: want [word, frequency], got %d elements", domain.ErrMalformedEntry, len(x))
		}
		input = map[string]any{"word": x[0], "frequency": x[1]}
	case map[string]any, map[any]any:
		input = x
	default:
		return domain.Entry{}, fmt.Errorf("%w: unsupported type %T", domain.ErrMalformedEntry, v)
	}
	// mapstructure decodes an explicit null into the zero value.
	if field := nullField(input); field != "" {
		return domain.Entry{}, fmt.Errorf("%w: %s is null", domain.ErrMalformedEntry, field)
	}

	var e domain.Entry
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       strictScalars,
		ErrorUnset:       true,
		WeaklyTypedInput: false,
		Result:           &e,
	})
	if err != nil {
		return domain.Entry{}, err
	}
	if err := dec.Decode(input); err != nil {
		return domain.Entry{}, fmt.Errorf("%w: %v", domain.ErrMalformedEntry, err)
	}
	if strings.TrimSpace(e.Word) == "" {
		return domain.Entry{}, fmt.Errorf("%w: blank word", domain.ErrMalformedEntry)
	}
	if e.Frequency < 0 {
		return domain.Entry{}, fmt.Errorf("%w: negative frequency %d for %q", domain.ErrMalformedEntry, e.Frequency, e.Word)
	}
	return e, nil
}

// maxIntFloat is 2^63, the first float64 that overflows an int.
const maxIntFloat = float64(1 << 63)

func nullField(input any) string {
	for _, field := range []string{"word", "frequency"} {
		var v any
		var ok bool
		switch m := input.(type) {
		case map[string]any:
			v, ok = m[field]
		case map[any]any:
			v, ok = m[field]
		}
		if ok && v == nil {
			return field
		}
	}
	return ""
}

// strictScalars closes two gaps left by mapstructure's strict mode: floats
// are truncated into ints silently, and json.Number is accepted as a string.
func strictScalars(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		if from == reflect.TypeOf(json.Number("")) {
			return nil, fmt.Errorf("word must be a string, got number %v", data)
		}
	case reflect.Int:
		if from.Kind() == reflect.Float32 || from.Kind() == reflect.Float64 {
			f := reflect.ValueOf(data).Float()
			if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
				return nil, fmt.Errorf("frequency %v is not a whole number", f)
			}
			if f >= maxIntFloat || f < -maxIntFloat {
				return nil, fmt.Errorf("frequency %v is out of range", f)
			}
		}
	}
	return data, nil
}

// Load reads src and decodes its entries.
func Load(ctx context.Context, src ports.VocabularySource) ([]domain.Entry, []error, error) {
	raw, err := src.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries, skipped := Decode(raw)
	return entries, skipped, nil
}
