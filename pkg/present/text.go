package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Display strings.
const (
	TitleDeviceFound        = "Device Found"
	TitleBeaconDeviceFound  = "BLE Device Found"
	TitleNetworkDeviceFound = "Network Device Found"
	TitleDeviceInfo         = "Device Information"
	MessageDeviceDataError  = "Device data could not be read"
)

// Summary returns the short notice for a finding.
func Summary(f Finding) string {
	switch f.Channel {
	case ChannelBeacon:
		return TitleBeaconDeviceFound + " \n" + f.Source
	case ChannelNetwork:
		return TitleNetworkDeviceFound + " \n" + f.Source
	}
	if f.Record == nil {
		return TitleDeviceFound + " \n" + ident.LabelName(f.Source)
	}
	return TitleDeviceFound + " \n" + f.Record.Brand + " " + f.Record.Model
}

// Details returns the device information text for a record. Category
// descriptions come from t; a nil t omits them.
func Details(rec *ident.DeviceRecord, t *tables.Tables) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nType:  %s\nBrand: %s\nModel: %s\nData: \n", rec.Type, rec.Brand, rec.Model)
	for _, c := range rec.Categories {
		desc := ""
		if t != nil {
			desc = t.Description(c)
		}
		fmt.Fprintf(&b, "\n%s: %s\n", c, desc)
	}
	return b.String()
}

// WriterPresenter prints findings as text.
type WriterPresenter struct {
	w      io.Writer
	tables *tables.Tables

	// ShowDetails appends the device information block to each finding.
	ShowDetails bool
}

// NewWriterPresenter creates a presenter writing to w.
func NewWriterPresenter(w io.Writer, t *tables.Tables) *WriterPresenter {
	return &WriterPresenter{w: w, tables: t}
}

// Present writes f.
func (p *WriterPresenter) Present(f Finding) {
	ts := ""
	if !f.At.IsZero() {
		ts = f.At.Format("15:04:05.000") + " "
	}
	fmt.Fprintf(p.w, "%s[%s] %s\n", ts, f.Channel, strings.ReplaceAll(Summary(f), " \n", ": "))

	if f.Err != nil || f.Record == nil {
		msg := MessageDeviceDataError
		if f.Err != nil {
			msg += " (" + ident.Kind(f.Err) + "): " + f.Err.Error()
		}
		fmt.Fprintf(p.w, "  %s\n", msg)
		return
	}
	if p.ShowDetails {
		fmt.Fprintf(p.w, "  %s\n", TitleDeviceInfo)
		for _, line := range strings.Split(Details(f.Record, p.tables), "\n") {
			if line != "" {
				fmt.Fprintf(p.w, "    %s\n", line)
			}
		}
	}
}
