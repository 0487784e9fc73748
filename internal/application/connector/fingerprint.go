package connector

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/crm/backend/internal/domain/connector"
)

// fieldEscaper keeps delimiter characters inside user-supplied fields
// from masquerading as field boundaries, so distinct filter sets can
// never hash to the same key.
var fieldEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`, `=`, `\=`)

// Fingerprint derives the canonical cache key for a search. Two
// requests with the same logical parameters must produce the same key
// no matter how the request was constructed, so filter keys are sorted
// and coordinates are rounded before hashing.
func Fingerprint(q connector.SearchQuery) string {
	var b strings.Builder
	b.WriteString(string(q.Provider))
	b.WriteByte('|')
	b.WriteString(fieldEscaper.Replace(strings.ToLower(strings.TrimSpace(q.Query))))

	if len(q.Filters) > 0 {
		keys := make([]string, 0, len(q.Filters))
		for k := range q.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteByte('|')
			b.WriteString(fieldEscaper.Replace(k))
			b.WriteByte('=')
			b.WriteString(fieldEscaper.Replace(q.Filters[k]))
		}
	}

	if q.Location != nil {
		// Four decimal places is ~11m resolution, enough to treat
		// nearby requests as the same logical search.
		fmt.Fprintf(&b, "|loc=%.4f,%.4f", q.Location.Lat, q.Location.Lng)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
