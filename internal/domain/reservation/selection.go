package reservation

import "strings"

// ChooseSlot returns the first preferred slot that is available, in preference order.
// Labels are compared after normalising "19:00:00" and "07:00" style input to "19:00"/"7:00".
// If preferred is empty, returns the earliest available slot.
func ChooseSlot(preferred, available []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	if len(preferred) == 0 {
		return available[0], true
	}

	m := make(map[string]struct{}, len(available))
	for _, s := range available {
		m[NormalizeSlot(s)] = struct{}{}
	}
	for _, p := range preferred {
		k := NormalizeSlot(p)
		if _, ok := m[k]; ok {
			return k, true
		}
	}
	return "", false
}

// NormalizeSlot trims seconds and a leading zero from an HH:MM[:SS] label.
func NormalizeSlot(s string) string {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		s = parts[0] + ":" + parts[1]
	}
	if len(s) == 5 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
