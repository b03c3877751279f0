package dashboard

import (
	"sort"
	"strings"
	"time"

	"station-reports/internal/storage"
)

const DefaultOnlineWindow = 90 * time.Second

type Presence struct {
	StationID  int64      `json:"station_id"`
	Name       string     `json:"name"`
	Online     bool       `json:"online"`
	LastSeenAt *time.Time `json:"last_seen_at"`
}

// ClassifyOnline: станция онлайн, если последний визит был меньше window назад.
// Время без пояса считается настенным временем в loc.
func ClassifyOnline(stations []storage.Station, now time.Time, loc *time.Location, window time.Duration) []Presence {
	if loc == nil {
		loc = time.UTC
	}
	if window <= 0 {
		window = DefaultOnlineWindow
	}

	out := make([]Presence, 0, len(stations))
	for _, st := range stations {
		p := Presence{StationID: st.ID, Name: st.DisplayName()}

		if st.LastSeenAt != nil {
			seen := *st.LastSeenAt
			if st.LastSeenNaive {
				seen = time.Date(seen.Year(), seen.Month(), seen.Day(), seen.Hour(), seen.Minute(), seen.Second(), seen.Nanosecond(), loc)
			}
			p.LastSeenAt = &seen
			p.Online = now.Sub(seen) < window
		}

		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	return out
}
