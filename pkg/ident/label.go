package ident

import (
	"fmt"
	"strings"

	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Label encoding constants.
const (
	// LabelSegments is the number of bracketed segments in a label.
	LabelSegments = 4

	// LabelDelimiter separates segments inside the brackets.
	LabelDelimiter = "]["

	// LabelCategorySeparator separates category keys.
	LabelCategorySeparator = ","

	// DefaultLabelExtension is the image extension used by the marker set.
	DefaultLabelExtension = "png"

	// minLabelLen is "[" + three delimiters + "].x".
	minLabelLen = 1 + (LabelSegments-1)*len(LabelDelimiter) + 3
)

// DecodeLabel decodes a marker label of the form
// [TYPE][BRAND][MODEL][CAT1,CAT2,...].<ext>.
func DecodeLabel(raw string, t *tables.Tables) (*DeviceRecord, error) {
	body, err := labelBody(raw)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(body, LabelDelimiter)
	if len(parts) != LabelSegments {
		return nil, &DecodeError{
			Err:   ErrSegmentCountMismatch,
			Value: raw,
			Index: len(parts),
			Bound: LabelSegments,
		}
	}

	deviceType, err := resolveKey(t.Types(), parts[0])
	if err != nil {
		return nil, err
	}
	brand, err := resolveKey(t.Brands(), parts[1])
	if err != nil {
		return nil, err
	}

	categories := []string{}
	if parts[3] != "" {
		for _, key := range strings.Split(parts[3], LabelCategorySeparator) {
			label, err := resolveKey(t.Categories(), key)
			if err != nil {
				return nil, err
			}
			categories = append(categories, label)
		}
	}

	return &DeviceRecord{
		Type:       deviceType,
		Brand:      brand,
		Model:      parts[2],
		Categories: categories,
	}, nil
}

// labelBody strips the leading "[" and the trailing "].<ext>".
func labelBody(raw string) (string, error) {
	if len(raw) < minLabelLen || raw[0] != '[' {
		return "", &DecodeError{Err: ErrMalformedEnvelope, Value: raw}
	}

	end := strings.LastIndex(raw, "].")
	if end < 1 || end+2 >= len(raw) {
		return "", &DecodeError{Err: ErrMalformedEnvelope, Value: raw}
	}

	return raw[1:end], nil
}

func resolveKey(tbl *tables.Table, key string) (string, error) {
	e, ok := tbl.Lookup(key)
	if !ok {
		return "", &DecodeError{
			Err:     ErrUnknownKey,
			Segment: tbl.Kind().String(),
			Value:   key,
		}
	}
	return e.Label, nil
}

// EncodeLabel builds a marker label from symbolic keys. An empty ext uses
// DefaultLabelExtension.
func EncodeLabel(typeKey, brandKey, model string, categoryKeys []string, ext string) string {
	if ext == "" {
		ext = DefaultLabelExtension
	}
	return fmt.Sprintf("[%s][%s][%s][%s].%s",
		typeKey, brandKey, model, strings.Join(categoryKeys, LabelCategorySeparator), ext)
}

// LabelName returns the label without its extension, for display.
func LabelName(raw string) string {
	if i := strings.LastIndex(raw, "."); i > 0 {
		return raw[:i]
	}
	return raw
}
