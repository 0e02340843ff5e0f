package present_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/present"
	"github.com/mjstratton7/PrivacyScan/pkg/present/mocks"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

var cam = &ident.DeviceRecord{
	Type:       "Camera",
	Brand:      "Nest",
	Model:      "Cam Indoor",
	Categories: []string{"Audio", "Video"},
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		f    present.Finding
		want string
	}{
		{"Marker", present.Finding{Channel: present.ChannelMarker, Record: cam}, "Device Found \nNest Cam Indoor"},
		{"MarkerError", present.Finding{Channel: present.ChannelMarker, Source: "[A][B].png"}, "Device Found \n[A][B]"},
		{"Beacon", present.Finding{Channel: present.ChannelBeacon, Source: "IDENT-1 (AA:BB)", Record: cam}, "BLE Device Found \nIDENT-1 (AA:BB)"},
		{"Network", present.Finding{Channel: present.ChannelNetwork, Source: "Porch Cam", Record: cam}, "Network Device Found \nPorch Cam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, present.Summary(tt.f))
		})
	}
}

func TestDetails(t *testing.T) {
	got := present.Details(cam, tables.Builtin())
	assert.Equal(t, "\nType:  Camera\nBrand: Nest\nModel: Cam Indoor\nData: \n"+
		"\nAudio: Records or streams sound from its surroundings.\n"+
		"\nVideo: Records or streams images of its surroundings.\n", got)

	noTables := present.Details(&ident.DeviceRecord{Type: "Light", Brand: "Hue", Model: "A19", Categories: []string{"None"}}, nil)
	assert.Contains(t, noTables, "\nNone: \n")
}

func TestWriterPresenter(t *testing.T) {
	var buf bytes.Buffer
	p := present.NewWriterPresenter(&buf, tables.Builtin())
	p.ShowDetails = true

	p.Present(present.Finding{Channel: present.ChannelMarker, Source: "x.png", Record: cam})
	out := buf.String()
	assert.Contains(t, out, "[marker] Device Found: Nest Cam Indoor\n")
	assert.Contains(t, out, "  Device Information\n")
	assert.Contains(t, out, "    Brand: Nest\n")
	assert.Contains(t, out, "    Video: Records or streams images of its surroundings.\n")

	buf.Reset()
	_, err := ident.DecodeLabel("[CAMERA][NEST][X].png", tables.Builtin())
	p.Present(present.Finding{
		Channel: present.ChannelMarker,
		Source:  "[CAMERA][NEST][X].png",
		Err:     err,
		At:      time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	out = buf.String()
	assert.Contains(t, out, "03:04:05.000 [marker] Device Found: [CAMERA][NEST][X]\n")
	assert.Contains(t, out, "Device data could not be read (SegmentCountMismatch)")
	assert.NotContains(t, out, "Device Information")
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	var mu sync.Mutex
	var got []string

	sink := mocks.NewMockPresenter(t)
	sink.EXPECT().Present(mock.Anything).Run(func(f present.Finding) {
		mu.Lock()
		got = append(got, f.Source)
		mu.Unlock()
	}).Return().Times(3)

	d := present.NewDispatcher(sink, 8)
	d.Present(present.Finding{Source: "a"})
	d.Present(present.Finding{Source: "b"})
	d.Present(present.Finding{Source: "c"})
	d.Start()
	d.Stop()

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, d.Dropped())
}

func TestDispatcherSerializesConcurrentProducers(t *testing.T) {
	const producers, each = 8, 50

	var inSink, maxInSink, total int
	var mu sync.Mutex
	sink := present.PresenterFunc(func(present.Finding) {
		mu.Lock()
		inSink++
		if inSink > maxInSink {
			maxInSink = inSink
		}
		mu.Unlock()

		time.Sleep(10 * time.Microsecond)

		mu.Lock()
		inSink--
		total++
		mu.Unlock()
	})

	d := present.NewDispatcher(sink, producers*each)
	d.Start()

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				d.Present(present.Finding{Channel: present.ChannelBeacon})
			}
		}()
	}
	wg.Wait()
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, producers*each, total)
	assert.Equal(t, 1, maxInSink, "sink must never be entered concurrently")
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := mocks.NewMockPresenter(t)
	sink.EXPECT().Present(mock.Anything).Return().Times(2)

	d := present.NewDispatcher(sink, 2)
	d.Present(present.Finding{Source: "1"})
	d.Present(present.Finding{Source: "2"})
	d.Present(present.Finding{Source: "3", Err: errors.New("lost")})
	require.Equal(t, uint64(1), d.Dropped())

	d.Start()
	d.Stop()
}

func TestDispatcherStartStopIdempotent(t *testing.T) {
	d := present.NewDispatcher(present.PresenterFunc(func(present.Finding) {}), 0)
	d.Stop()
	d.Start()
	d.Start()
	d.Stop()
	d.Stop()
}

func TestChannelString(t *testing.T) {
	assert.Equal(t, "marker", present.ChannelMarker.String())
	assert.Equal(t, "beacon", present.ChannelBeacon.String())
	assert.Equal(t, "network", present.ChannelNetwork.String())
	assert.Equal(t, "unknown", present.Channel(9).String())
}
