package discovery

import (
	"fmt"
	"sort"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeIdentTXT creates TXT records for an identification service.
func EncodeIdentTXT(info *IdentInfo) TXTRecordMap {
	txt := TXTRecordMap{
		TXTKeyVersion: TXTVersion,
		TXTKeyIdent:   info.Label,
	}
	if info.Name != "" {
		txt[TXTKeyName] = info.Name
	}
	return txt
}

// DecodeIdentTXT parses the TXT records of an identification service.
// A missing version is read as version 1.
func DecodeIdentTXT(txt TXTRecordMap) (*IdentInfo, error) {
	if v, ok := txt[TXTKeyVersion]; ok && v != TXTVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, v)
	}

	label, ok := txt[TXTKeyIdent]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyIdent)
	}
	if label == "" {
		return nil, fmt.Errorf("%w: empty %s", ErrInvalidTXTRecord, TXTKeyIdent)
	}

	return &IdentInfo{
		Label: label,
		Name:  txt[TXTKeyName],
	}, nil
}

// ValidateTXT checks that every TXT string fits the DNS character-string
// limit.
func ValidateTXT(txt TXTRecordMap) error {
	for k, v := range txt {
		if len(k)+1+len(v) > MaxTXTStringLen {
			return fmt.Errorf("%w: %s is %d bytes", ErrInvalidTXTRecord, k, len(k)+1+len(v))
		}
	}
	return nil
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value"
// strings, sorted by key.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
