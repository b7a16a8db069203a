package secrets

import "strings"

// normalizeThumbprint strips the separators certutil and the certificate
// MMC snap-in print and lower-cases the hex.
func normalizeThumbprint(tp string) string {
	tp = strings.ReplaceAll(tp, " ", "")
	tp = strings.ReplaceAll(tp, ":", "")
	return strings.ToLower(tp)
}
