package ident

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

func TestDecodeLabel(t *testing.T) {
	tb := tables.Builtin()

	rec, err := DecodeLabel("[CAMERA][NEST][Cam Indoor][AUDIO,VIDEO].png", tb)
	require.NoError(t, err)
	assert.Equal(t, &DeviceRecord{
		Type:       "Camera",
		Brand:      "Nest",
		Model:      "Cam Indoor",
		Categories: []string{"Audio", "Video"},
	}, rec)
}

func TestDecodeLabelZeroCategories(t *testing.T) {
	rec, err := DecodeLabel("[LIGHT][HUE][A19][].png", tables.Builtin())
	require.NoError(t, err)
	assert.Equal(t, "Light", rec.Type)
	assert.Equal(t, "Hue", rec.Brand)
	assert.Equal(t, "A19", rec.Model)
	assert.Empty(t, rec.Categories)
	assert.NotNil(t, rec.Categories)
}

func TestDecodeLabelOtherExtension(t *testing.T) {
	rec, err := DecodeLabel("[SPEAKER][GOOGLE][Home Max][AUDIO].jpeg", tables.Builtin())
	require.NoError(t, err)
	assert.Equal(t, "Home Max", rec.Model)
	assert.Equal(t, []string{"Audio"}, rec.Categories)
}

func TestDecodeLabelErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
		segment string
		value   string
	}{
		{"Empty", "", ErrMalformedEnvelope, "", ""},
		{"TooShort", "[A].png", ErrMalformedEnvelope, "", ""},
		{"NoLeadingBracket", "CAMERA][NEST][X][AUDIO].png", ErrMalformedEnvelope, "", ""},
		{"NoExtension", "[CAMERA][NEST][X][AUDIO]", ErrMalformedEnvelope, "", ""},
		{"EmptyExtension", "[CAMERA][NEST][X][AUDIO].", ErrMalformedEnvelope, "", ""},
		{"ThreeSegments", "[CAMERA][NEST][Cam Indoor].png", ErrSegmentCountMismatch, "", ""},
		{"FiveSegments", "[CAMERA][NEST][Cam][AUDIO][EXTRA].png", ErrSegmentCountMismatch, "", ""},
		{"UnknownType", "[TOASTER][NEST][X][AUDIO].png", ErrUnknownKey, "type", "TOASTER"},
		{"UnknownBrand", "[CAMERA][ACME][X][AUDIO].png", ErrUnknownKey, "brand", "ACME"},
		{"UnknownCategory", "[CAMERA][NEST][X][AUDIO,SMELL].png", ErrUnknownKey, "category", "SMELL"},
		{"EmptyCategoryElement", "[CAMERA][NEST][X][AUDIO,,VIDEO].png", ErrUnknownKey, "category", ""},
		{"LowercaseKey", "[camera][NEST][X][AUDIO].png", ErrUnknownKey, "type", "camera"},
		{"SpaceBeforeBrand", "[CAMERA][ NEST][X][AUDIO].png", ErrUnknownKey, "brand", " NEST"},
		{"SpaceAfterComma", "[CAMERA][NEST][X][AUDIO, VIDEO].png", ErrUnknownKey, "category", " VIDEO"},
	}

	tb := tables.Builtin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeLabel(tt.raw, tb)
			assert.Nil(t, rec, "no partial record on error")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)

			var de *DecodeError
			require.True(t, errors.As(err, &de))
			if tt.segment != "" {
				assert.Equal(t, tt.segment, de.Segment)
				assert.Equal(t, tt.value, de.Value)
			}
		})
	}
}

func TestLabelRoundTripPreservesCategoryOrder(t *testing.T) {
	tb := tables.Builtin()
	keys := []string{"NONE", "PII", "AUDIO", "VIDEO", "PRESENCE", "INFORMATION", "LOCATION"}

	// Every rotation and its reverse, including the empty prefix.
	for n := 0; n <= len(keys); n++ {
		for shift := 0; shift < len(keys); shift++ {
			var order []string
			for i := 0; i < n; i++ {
				order = append(order, keys[(i+shift)%len(keys)])
			}
			for _, cats := range [][]string{order, reversed(order)} {
				raw := EncodeLabel("DOORBELL", "RING", "Video", cats, "")
				rec, err := DecodeLabel(raw, tb)
				require.NoError(t, err, raw)

				gotKeys := make([]string, len(rec.Categories))
				for i, label := range rec.Categories {
					gotKeys[i] = keyForLabel(t, tb, label)
				}
				if len(cats) == 0 {
					assert.Empty(t, gotKeys)
				} else {
					assert.Equal(t, cats, gotKeys, raw)
				}
			}
		}
	}
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

func keyForLabel(t *testing.T, tb *tables.Tables, label string) string {
	t.Helper()
	for _, e := range tb.Categories().Entries() {
		if e.Label == label {
			return e.Key
		}
	}
	t.Fatalf("no category with label %q", label)
	return ""
}

func TestDecodeFlags(t *testing.T) {
	tb := tables.Builtin()

	t.Run("AllClear", func(t *testing.T) {
		got, err := DecodeFlags("0000000", tb)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("FirstAndThird", func(t *testing.T) {
		got, err := DecodeFlags("1010000", tb)
		require.NoError(t, err)
		c0, _ := tb.Categories().At(0)
		c2, _ := tb.Categories().At(2)
		assert.Equal(t, []string{c0.Label, c2.Label}, got)
	})

	t.Run("AllSet", func(t *testing.T) {
		got, err := DecodeFlags("1111111", tb)
		require.NoError(t, err)
		assert.Len(t, got, 7)
		assert.Equal(t, "Location", got[6])
	})

	t.Run("LengthMismatch", func(t *testing.T) {
		_, err := DecodeFlags("101", tb)
		assert.ErrorIs(t, err, ErrFlagFieldLengthMismatch)
	})

	t.Run("InvalidCharacter", func(t *testing.T) {
		_, err := DecodeFlags("10x0000", tb)
		assert.ErrorIs(t, err, ErrInvalidFlagCharacter)

		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, 2, de.Index)
		assert.Equal(t, "x", de.Value)
	})

	t.Run("LengthCheckedBeforeCharacters", func(t *testing.T) {
		_, err := DecodeFlags("2", tb)
		assert.ErrorIs(t, err, ErrFlagFieldLengthMismatch)
	})
}

func TestFlagIndicesExhaustive(t *testing.T) {
	const width = 7
	for mask := 0; mask < 1<<width; mask++ {
		field := make([]byte, width)
		var want []int
		for i := 0; i < width; i++ {
			if mask&(1<<i) != 0 {
				field[i] = '1'
				want = append(want, i)
			} else {
				field[i] = '0'
			}
		}

		got, err := FlagIndices(string(field), width)
		if err != nil {
			t.Fatalf("FlagIndices(%s) error = %v", field, err)
		}
		if len(got) != len(want) {
			t.Fatalf("FlagIndices(%s) = %v, want %v", field, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("FlagIndices(%s) = %v, want %v", field, got, want)
			}
			if i > 0 && got[i] <= got[i-1] {
				t.Fatalf("FlagIndices(%s) not strictly ascending: %v", field, got)
			}
		}
	}
}

func TestDecodeInstanceID(t *testing.T) {
	tb := tables.Builtin()

	tests := []struct {
		name string
		hex  string
		want *DeviceRecord
	}{
		{
			name: "ArloCamera",
			hex:  "011010011000",
			want: &DeviceRecord{Type: "Camera", Brand: "Arlo", Model: "Arlo", Categories: []string{"Audio", "Video"}},
		},
		{
			name: "NestThermostatWithPrefix",
			hex:  "0x062100000111",
			want: &DeviceRecord{Type: "Thermostat", Brand: "Nest", Model: "Learning", Categories: []string{"Presence", "Information", "Location"}},
		},
		{
			name: "NoCategories",
			hex:  "034060000000",
			want: &DeviceRecord{Type: "Light", Brand: "Hue", Model: "Lightstrip", Categories: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInstanceID(tt.hex, tb)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeInstanceIDErrors(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		wantErr error
		segment string
	}{
		{"Empty", "", ErrMalformedEnvelope, ""},
		{"ShorterThanFields", "0110", ErrMalformedEnvelope, ""},
		{"HexDigitInType", "0a1010011000", ErrMalformedEnvelope, "type"},
		{"TypeOutOfRange", "071010011000", ErrIndexOutOfRange, "type"},
		{"BrandOutOfRange", "016010011000", ErrIndexOutOfRange, "brand"},
		{"ModelOutOfRange", "011120011000", ErrIndexOutOfRange, "model"},
		{"TooLong", "01101001100000", ErrMalformedEnvelope, ""},
		{"TooShort", "0110100110", ErrMalformedEnvelope, ""},
		{"NoFlags", "01101", ErrMalformedEnvelope, ""},
		{"PrefixOnly", "0x", ErrMalformedEnvelope, ""},
		{"FlagsInvalid", "0110100f1000", ErrInvalidFlagCharacter, "flags"},
	}

	tb := tables.Builtin()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeInstanceID(tt.hex, tb)
			assert.Nil(t, rec)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.segment != "" {
				var de *DecodeError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, tt.segment, de.Segment)
			}
		})
	}
}

func TestDecodeInstanceIDChecksWidthFirst(t *testing.T) {
	// Shorter than the layout, with a digit that would be an invalid flag.
	_, err := DecodeInstanceID("0110100f", tables.Builtin())
	require.ErrorIs(t, err, ErrMalformedEnvelope)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 8, de.Index)
	assert.Equal(t, InstanceIDHexLen, de.Bound)
}

func TestDecodeInstanceIDVariableWidth(t *testing.T) {
	layout := LayoutV1
	layout.Width = 0
	tb := tables.Builtin()

	rec, err := DecodeInstanceIDWithLayout("011010011000", layout, tb)
	require.NoError(t, err)
	assert.Equal(t, []string{"Audio", "Video"}, rec.Categories)

	_, err = DecodeInstanceIDWithLayout("0110100110", layout, tb)
	assert.ErrorIs(t, err, ErrFlagFieldLengthMismatch)

	_, err = DecodeInstanceIDWithLayout("0110", layout, tb)
	assert.ErrorIs(t, err, ErrMalformedEnvelope)
}

func TestEncodeInstanceIDRoundTrip(t *testing.T) {
	tb := tables.Builtin()

	hex, err := EncodeInstanceID(LayoutV1, 2, 3, 3, []int{3, 4}, tb.CategoryCount())
	require.NoError(t, err)
	assert.Equal(t, "023030001100", hex)
	assert.Len(t, hex, InstanceIDHexLen)

	rec, err := DecodeInstanceID(hex, tb)
	require.NoError(t, err)
	assert.Equal(t, "Doorbell", rec.Type)
	assert.Equal(t, "Ring", rec.Brand)
	assert.Equal(t, "Video", rec.Model)
	assert.Equal(t, []string{"Video", "Presence"}, rec.Categories)
}

func TestEncodeInstanceIDErrors(t *testing.T) {
	_, err := EncodeInstanceID(LayoutV1, 100, 0, 0, nil, 7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = EncodeInstanceID(LayoutV1, 0, 10, 0, nil, 7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = EncodeInstanceID(LayoutV1, 0, 0, -1, nil, 7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = EncodeInstanceID(LayoutV1, 0, 0, 0, []int{7}, 7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = EncodeInstanceID(LayoutV1, 0, 0, 0, nil, 8)
	assert.ErrorIs(t, err, ErrFlagFieldLengthMismatch, "flags must fill the layout width")
}

func TestKind(t *testing.T) {
	tb := tables.Builtin()

	_, err := DecodeLabel("[CAMERA][NEST][X].png", tb)
	assert.Equal(t, "SegmentCountMismatch", Kind(err))

	_, err = DecodeInstanceID("091010011000", tb)
	assert.Equal(t, "IndexOutOfRange", Kind(err))

	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "Unknown", Kind(errors.New("other")))
}

func TestDecodeErrorMessages(t *testing.T) {
	tb := tables.Builtin()

	_, err := DecodeLabel("[CAMERA][ACME][X][].png", tb)
	assert.EqualError(t, err, `ident: unknown key: brand "ACME"`)

	_, err = DecodeInstanceID("011010011", tb)
	assert.EqualError(t, err, `ident: malformed envelope: "011010011"`)

	layout := LayoutV1
	layout.Width = 0
	_, err = DecodeInstanceIDWithLayout("011010011", layout, tb)
	assert.EqualError(t, err, "ident: flag field length mismatch: got 4, want 7")
}

func TestDeviceRecordString(t *testing.T) {
	rec := &DeviceRecord{Type: "Camera", Brand: "Nest", Model: "Cam", Categories: []string{"Audio", "Video"}}
	assert.Equal(t, "Camera Nest Cam [Audio, Video]", rec.String())
	assert.True(t, rec.HasCategory("Video"))
	assert.False(t, rec.HasCategory("Location"))

	var nilRec *DeviceRecord
	assert.Equal(t, "<nil>", nilRec.String())
}

func TestLabelName(t *testing.T) {
	assert.Equal(t, "[CAMERA][NEST][X][]", LabelName("[CAMERA][NEST][X][].png"))
	assert.Equal(t, "plain", LabelName("plain"))
}
