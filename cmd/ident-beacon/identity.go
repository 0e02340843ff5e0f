package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mjstratton7/PrivacyScan/pkg/beacon"
	"github.com/mjstratton7/PrivacyScan/pkg/ident"
	"github.com/mjstratton7/PrivacyScan/pkg/tables"
)

// Identity is what a device publishes on each channel.
type Identity struct {
	// Label is the marker label, also published in the ident TXT key.
	Label string

	// InstanceID is the Eddystone UID instance id.
	InstanceID string

	// Record is the decoded identification, as a scanner will show it.
	Record *ident.DeviceRecord
}

// buildIdentity resolves symbolic keys against t and encodes both forms.
func buildIdentity(t *tables.Tables, typeKey, brandKey, modelKey string, categoryKeys []string) (*Identity, error) {
	typeIdx, err := indexOf(t.Types(), typeKey)
	if err != nil {
		return nil, err
	}
	brandIdx, err := indexOf(t.Brands(), brandKey)
	if err != nil {
		return nil, err
	}
	modelIdx, err := indexOf(t.Models(), modelKey)
	if err != nil {
		return nil, err
	}

	cats := make([]int, 0, len(categoryKeys))
	for _, key := range categoryKeys {
		idx, err := indexOf(t.Categories(), key)
		if err != nil {
			return nil, err
		}
		cats = append(cats, idx)
	}

	id, err := ident.EncodeInstanceID(ident.LayoutV1, typeIdx, brandIdx, modelIdx, cats, t.CategoryCount())
	if err != nil {
		return nil, fmt.Errorf("failed to encode instance id: %w", err)
	}
	if len(id) != ident.InstanceIDHexLen {
		return nil, fmt.Errorf("instance id %s is %d characters, beacons carry %d (tables have %d categories)",
			id, len(id), ident.InstanceIDHexLen, t.CategoryCount())
	}

	model, _ := t.Models().At(modelIdx)
	label := ident.EncodeLabel(typeKey, brandKey, model.Label, categoryKeys, "")

	rec, err := ident.DecodeInstanceID(id, t)
	if err != nil {
		return nil, fmt.Errorf("encoded instance id does not decode: %w", err)
	}

	return &Identity{Label: label, InstanceID: id, Record: rec}, nil
}

// Payload returns the advertisement payload a beacon should send.
func (id *Identity) Payload(name string, txPower int8, namespace [10]byte) ([]byte, error) {
	inst, err := beacon.ParseInstance(id.InstanceID)
	if err != nil {
		return nil, err
	}
	return beacon.UIDPayload(name, txPower, namespace, inst), nil
}

func indexOf(tbl *tables.Table, key string) (int, error) {
	i := tbl.IndexOf(key)
	if i < 0 {
		return 0, fmt.Errorf("unknown %s key %q", tbl.Kind(), key)
	}
	return i, nil
}

// parseNamespace parses a 10-byte namespace given as 20 hex characters or
// as up to 10 ASCII characters.
func parseNamespace(s string) ([10]byte, error) {
	var ns [10]byte
	if len(s) == 2*len(ns) {
		if _, err := hex.Decode(ns[:], []byte(s)); err == nil {
			return ns, nil
		}
	}
	if len(s) > len(ns) {
		return ns, fmt.Errorf("namespace %q: want 20 hex or at most 10 ASCII characters", s)
	}
	copy(ns[:], s)
	return ns, nil
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
