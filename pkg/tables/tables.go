package tables

import (
	"errors"
	"fmt"
)

// Table errors.
var (
	ErrEmptyTable    = errors.New("table has no entries")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrMissingKey    = errors.New("entry key is empty")
	ErrMissingLabel  = errors.New("entry label is empty")
	ErrInvalidLocale = errors.New("invalid locale")
)

// Kind identifies one of the four tables.
type Kind uint8

const (
	// KindType is the device type table.
	KindType Kind = iota

	// KindBrand is the brand table.
	KindBrand

	// KindModel is the model table.
	KindModel

	// KindCategory is the collected-data category table.
	KindCategory
)

// String returns the segment name used in decode errors.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindBrand:
		return "brand"
	case KindModel:
		return "model"
	case KindCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Entry is one row of a table.
type Entry struct {
	// Key is the symbolic lookup key used by the label encoding.
	Key string `yaml:"key"`

	// Label is the display string.
	Label string `yaml:"label"`

	// Description is an optional longer explanation (categories only).
	Description string `yaml:"description,omitempty"`
}

// Table is an ordered, keyed list of entries.
type Table struct {
	kind    Kind
	entries []Entry
	byKey   map[string]int
}

func newTable(kind Kind, entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, ErrEmptyTable)
	}

	t := &Table{
		kind:    kind,
		entries: make([]Entry, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}
	copy(t.entries, entries)

	for i, e := range t.entries {
		if e.Key == "" {
			return nil, fmt.Errorf("%s[%d]: %w", kind, i, ErrMissingKey)
		}
		if e.Label == "" {
			return nil, fmt.Errorf("%s[%d] %s: %w", kind, i, e.Key, ErrMissingLabel)
		}
		if _, dup := t.byKey[e.Key]; dup {
			return nil, fmt.Errorf("%s: %w: %s", kind, ErrDuplicateKey, e.Key)
		}
		t.byKey[e.Key] = i
	}

	return t, nil
}

// Kind returns which table this is.
func (t *Table) Kind() Kind {
	return t.kind
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup resolves a symbolic key.
func (t *Table) Lookup(key string) (Entry, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// IndexOf returns the position of key, or -1.
func (t *Table) IndexOf(key string) int {
	i, ok := t.byKey[key]
	if !ok {
		return -1
	}
	return i
}

// At resolves a positional index.
func (t *Table) At(i int) (Entry, bool) {
	if i < 0 || i >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns a copy of the entries in order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Tables is the complete set of lookup tables for one locale.
type Tables struct {
	locale     string
	types      *Table
	brands     *Table
	models     *Table
	categories *Table

	// descriptions keyed by category label, for the detail view
	descriptions map[string]string
}

// New builds Tables from raw entry lists.
func New(locale string, types, brands, models, categories []Entry) (*Tables, error) {
	if locale == "" {
		return nil, ErrInvalidLocale
	}

	t := &Tables{locale: locale}

	var err error
	if t.types, err = newTable(KindType, types); err != nil {
		return nil, err
	}
	if t.brands, err = newTable(KindBrand, brands); err != nil {
		return nil, err
	}
	if t.models, err = newTable(KindModel, models); err != nil {
		return nil, err
	}
	if t.categories, err = newTable(KindCategory, categories); err != nil {
		return nil, err
	}

	t.descriptions = make(map[string]string, len(categories))
	for _, c := range categories {
		if c.Description != "" {
			t.descriptions[c.Label] = c.Description
		}
	}

	return t, nil
}

// Locale returns the locale tag the tables were built for.
func (t *Tables) Locale() string {
	return t.locale
}

// Table returns the table of the given kind.
func (t *Tables) Table(kind Kind) *Table {
	switch kind {
	case KindType:
		return t.types
	case KindBrand:
		return t.brands
	case KindModel:
		return t.models
	case KindCategory:
		return t.categories
	default:
		return nil
	}
}

// Types returns the device type table.
func (t *Tables) Types() *Table { return t.types }

// Brands returns the brand table.
func (t *Tables) Brands() *Table { return t.brands }

// Models returns the model table.
func (t *Tables) Models() *Table { return t.models }

// Categories returns the data category table.
func (t *Tables) Categories() *Table { return t.categories }

// CategoryCount returns the number of defined categories, which is also the
// width of the BLE flag field.
func (t *Tables) CategoryCount() int {
	return t.categories.Len()
}

// Description returns the description for a category display label.
// Returns an empty string when the table has none.
func (t *Tables) Description(categoryLabel string) string {
	return t.descriptions[categoryLabel]
}
