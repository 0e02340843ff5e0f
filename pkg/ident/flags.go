package ident

import (
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Flag characters.
const (
	FlagSet   = '1'
	FlagClear = '0'
)

// FlagIndices returns the positions of set flags in field, in ascending
// order. The field must be exactly width characters of '0' or '1'.
func FlagIndices(field string, width int) ([]int, error) {
	if len(field) != width {
		return nil, &DecodeError{
			Err:     ErrFlagFieldLengthMismatch,
			Segment: "flags",
			Value:   field,
			Index:   len(field),
			Bound:   width,
		}
	}

	indices := []int{}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case FlagSet:
			indices = append(indices, i)
		case FlagClear:
		default:
			return nil, &DecodeError{
				Err:     ErrInvalidFlagCharacter,
				Segment: "flags",
				Value:   string(field[i]),
				Index:   i,
			}
		}
	}
	return indices, nil
}

// DecodeFlags expands a category flag field into category labels, ordered by
// ascending category index.
func DecodeFlags(field string, t *tables.Tables) ([]string, error) {
	indices, err := FlagIndices(field, t.CategoryCount())
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(indices))
	for _, i := range indices {
		// FlagIndices bounds i by the category count.
		e, _ := t.Categories().At(i)
		labels = append(labels, e.Label)
	}
	return labels, nil
}

// EncodeFlags builds a flag field of the given width with the listed
// category indices set.
func EncodeFlags(indices []int, width int) (string, error) {
	buf := make([]byte, width)
	for i := range buf {
		buf[i] = FlagClear
	}
	for _, idx := range indices {
		if idx < 0 || idx >= width {
			return "", &DecodeError{
				Err:     ErrIndexOutOfRange,
				Segment: "category",
				Index:   idx,
				Bound:   width,
			}
		}
		buf[idx] = FlagSet
	}
	return string(buf), nil
}
