package beacon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// uidAdvertisement is a captured Eddystone UID advertisement: flags, service
// UUID list and the UID frame with namespace "bluecharm1".
var uidAdvertisement = []byte{
	0x02, 0x01, 0x06,
	0x03, 0x03, 0xAA, 0xFE,
	0x17, 0x16, 0xAA, 0xFE,
	0x00, 0xEB,
	0x62, 0x6c, 0x75, 0x65, 0x63, 0x68, 0x61, 0x72, 0x6d, 0x31,
	0x01, 0x10, 0x10, 0x01, 0x10, 0x00,
	0x00, 0x00,
}

var urlAdvertisement = []byte{
	0x02, 0x01, 0x06,
	0x03, 0x03, 0xAA, 0xFE,
	0x0E, 0x16, 0xAA, 0xFE,
	0x10, 0xEB, 0x03,
	'e', 'x', 'a', 'm', 'p', 'l', 'e', 0x07,
}

func TestParseStructures(t *testing.T) {
	s, err := ParseStructures(uidAdvertisement)
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, ADTypeFlags, s[0].Type)
	assert.Equal(t, []byte{0x06}, s[0].Data)
	assert.Equal(t, ADTypeComplete16BitUUID, s[1].Type)
	assert.Equal(t, ADTypeServiceData16, s[2].Type)
	assert.Len(t, s[2].Data, 22)
}

func TestParseStructuresPadding(t *testing.T) {
	payload := append([]byte{0x02, 0x01, 0x06}, make([]byte, 28)...)
	s, err := ParseStructures(payload)
	require.NoError(t, err)
	assert.Len(t, s, 1)
}

func TestParseStructuresTruncated(t *testing.T) {
	_, err := ParseStructures([]byte{0x02, 0x01, 0x06, 0x05, 0x16, 0xAA})
	assert.ErrorIs(t, err, ErrTruncatedStructure)
}

func TestInstanceIDFromUIDFrame(t *testing.T) {
	id, err := InstanceID(uidAdvertisement)
	require.NoError(t, err)
	assert.Equal(t, "011010011000", id)

	s, _ := ParseStructures(uidAdvertisement)
	frames, err := Frames(s)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, FrameUID, frames[0].Type)
	assert.Equal(t, int8(-21), frames[0].UID.TxPower)
	assert.Equal(t, "626c7565636861726d31", frames[0].UID.NamespaceHex())
}

func TestURLFrame(t *testing.T) {
	s, err := ParseStructures(urlAdvertisement)
	require.NoError(t, err)

	frames, err := Frames(s)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	require.NotNil(t, frames[0].URL)
	assert.Equal(t, "https://example.com", frames[0].URL.URL)

	_, err = InstanceID(urlAdvertisement)
	assert.ErrorIs(t, err, ErrNoInstanceID)
}

func TestURLExpansion(t *testing.T) {
	tests := []struct {
		scheme  byte
		encoded []byte
		want    string
	}{
		{0x00, []byte("goo\x00gl"), "http://www.goo.com/gl"},
		{0x01, []byte("nest\x08"), "https://www.nest.org"},
		{0x02, []byte("ring\x03x"), "http://ring.net/x"},
		{0x03, []byte("hue"), "https://hue"},
	}
	for _, tt := range tests {
		got, err := expandURL(tt.scheme, tt.encoded)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := expandURL(0x04, nil)
	assert.ErrorIs(t, err, ErrUnknownURLScheme)
}

func TestFramesErrors(t *testing.T) {
	_, err := InstanceID([]byte{0x02, 0x01, 0x06})
	assert.ErrorIs(t, err, ErrNotEddystone)

	short := []byte{0x06, 0x16, 0xAA, 0xFE, 0x00, 0xEB, 0x62}
	_, err = InstanceID(short)
	assert.ErrorIs(t, err, ErrShortFrame)

	otherService := []byte{0x05, 0x16, 0x0F, 0x18, 0x64, 0x00}
	_, err = InstanceID(otherService)
	assert.ErrorIs(t, err, ErrNotEddystone)
}

func TestUIDPayloadRoundTrip(t *testing.T) {
	inst, err := ParseInstance("0x062100000111")
	require.NoError(t, err)

	var ns [10]byte
	copy(ns[:], "bluecharm1")
	payload := UIDPayload("IDENT-THERMO", -21, ns, inst)

	s, err := ParseStructures(payload)
	require.NoError(t, err)
	assert.Equal(t, "IDENT-THERMO", LocalName(s))

	id, err := InstanceID(payload)
	require.NoError(t, err)
	assert.Equal(t, "062100000111", id)

	assert.Equal(t, uidAdvertisement,
		UIDPayload("", -21, ns, [6]byte{0x01, 0x10, 0x10, 0x01, 0x10, 0x00}))
}

func TestParseInstanceErrors(t *testing.T) {
	_, err := ParseInstance("0110")
	assert.Error(t, err)
	_, err = ParseInstance("01101001100z")
	assert.Error(t, err)
}

func TestDecodeSighting(t *testing.T) {
	rec, err := Decode(Sighting{Name: "IDENT-CAM", Address: "AA:BB", Payload: uidAdvertisement}, tables.Builtin())
	require.NoError(t, err)
	assert.Equal(t, &ident.DeviceRecord{
		Type:       "Camera",
		Brand:      "Arlo",
		Model:      "Arlo",
		Categories: []string{"Audio", "Video"},
	}, rec)

	_, err = Decode(Sighting{Payload: urlAdvertisement}, tables.Builtin())
	assert.ErrorIs(t, err, ErrNoInstanceID)

	assert.Equal(t, "IDENT-CAM (AA:BB)", Sighting{Name: "IDENT-CAM", Address: "AA:BB"}.Source())
}

func TestMatchName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"IDENT", true},
		{"ident-cam", true},
		{"My Ident Beacon", true},
		{"", false},
		{"IDEN", false},
		{"Kitchen Speaker", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchName(tt.name), tt.name)
	}
}

// countingRadio counts StopScan calls.
type countingRadio struct {
	*ScriptedRadio
	stops atomic.Int32
}

func (r *countingRadio) StopScan() error {
	r.stops.Add(1)
	return r.ScriptedRadio.StopScan()
}

func TestWindowTimeoutFiresOnce(t *testing.T) {
	radio := &countingRadio{ScriptedRadio: NewScriptedRadio(Sighting{Name: "IDENT"})}
	w := NewWindow(radio)
	require.NoError(t, w.SetPeriod(20*time.Millisecond))

	var timeouts atomic.Int32
	timedOut := make(chan struct{}, 1)
	w.OnTimeout(func() {
		timeouts.Add(1)
		timedOut <- struct{}{}
	})

	var seen atomic.Int32
	require.NoError(t, w.Start(context.Background(), func(Sighting) { seen.Add(1) }))
	assert.True(t, w.IsScanning())
	assert.ErrorIs(t, w.Start(context.Background(), func(Sighting) {}), ErrScanInProgress)

	select {
	case <-timedOut:
	case <-time.After(2 * time.Second):
		t.Fatal("scan window did not time out")
	}

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("radio scan did not return after timeout")
	}

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), timeouts.Load())
	assert.Equal(t, int32(1), radio.stops.Load())
	assert.Equal(t, int32(1), seen.Load())
	assert.Equal(t, WindowIdle, w.State())
	assert.Zero(t, w.RemainingTime())
}

func TestWindowStopEarly(t *testing.T) {
	radio := &countingRadio{ScriptedRadio: NewScriptedRadio()}
	w := NewWindow(radio)

	var timeouts atomic.Int32
	w.OnTimeout(func() { timeouts.Add(1) })

	var changes []WindowState
	w.OnStateChange(func(_, newState WindowState) { changes = append(changes, newState) })

	require.NoError(t, w.Start(context.Background(), func(Sighting) {}))
	assert.Greater(t, w.RemainingTime(), time.Duration(0))
	w.Stop()
	w.Stop()

	<-w.Done()
	assert.Equal(t, WindowIdle, w.State())
	assert.Equal(t, int32(0), timeouts.Load())
	assert.Equal(t, int32(1), radio.stops.Load())
	assert.Equal(t, []WindowState{WindowScanning, WindowIdle}, changes)
}

func TestWindowRestartAfterTimeout(t *testing.T) {
	radio := NewScriptedRadio()
	w := NewWindow(radio)
	require.NoError(t, w.SetPeriod(10*time.Millisecond))

	timedOut := make(chan struct{}, 2)
	w.OnTimeout(func() { timedOut <- struct{}{} })

	for i := 0; i < 2; i++ {
		require.NoError(t, w.Start(context.Background(), func(Sighting) {}))
		select {
		case <-timedOut:
		case <-time.After(2 * time.Second):
			t.Fatalf("scan %d did not time out", i)
		}
		<-w.Done()
	}
	assert.Equal(t, 2, radio.Scans())
}

func TestWindowParentContextCancel(t *testing.T) {
	w := NewWindow(NewScriptedRadio())
	ctx, cancel := context.WithCancel(context.Background())

	idle := make(chan struct{}, 1)
	w.OnStateChange(func(_, newState WindowState) {
		if newState == WindowIdle {
			idle <- struct{}{}
		}
	})

	require.NoError(t, w.Start(ctx, func(Sighting) {}))
	cancel()

	select {
	case <-idle:
	case <-time.After(2 * time.Second):
		t.Fatal("window did not close on context cancel")
	}
}

type failingRadio struct{}

func (failingRadio) Scan(context.Context, func(Sighting)) error { return errors.New("adapter off") }
func (failingRadio) StopScan() error                            { return nil }

func TestWindowRadioError(t *testing.T) {
	w := NewWindow(failingRadio{})

	errCh := make(chan error, 1)
	w.OnError(func(err error) { errCh <- err })

	require.NoError(t, w.Start(context.Background(), func(Sighting) {}))

	select {
	case err := <-errCh:
		assert.EqualError(t, err, "adapter off")
	case <-time.After(2 * time.Second):
		t.Fatal("radio error not reported")
	}
	assert.Equal(t, WindowIdle, w.State())
}

func TestWindowSetPeriod(t *testing.T) {
	w := NewWindow(NewScriptedRadio())
	assert.Equal(t, DefaultScanPeriod, w.Period())
	assert.ErrorIs(t, w.SetPeriod(0), ErrInvalidPeriod)
	assert.ErrorIs(t, w.SetPeriod(MaxScanPeriod+time.Second), ErrInvalidPeriod)
	require.NoError(t, w.SetPeriod(time.Second))
	assert.Equal(t, time.Second, w.Period())
	assert.Equal(t, "SCANNING", WindowScanning.String())
}
