package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrStationExists = errors.New("station already exists")

type Station struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	StationName   string     `json:"station_name"`
	HasNightShift bool       `json:"has_night_shift"`
	LastSeenAt    *time.Time `json:"last_seen_at"`
	// LastSeenNaive - время хранится без часового пояса (DATETIME), зона в LastSeenAt не значима.
	LastSeenNaive bool `json:"-"`
}

// DisplayName: название станции, затем логин, затем идентификатор.
func (s Station) DisplayName() string {
	if name := strings.TrimSpace(s.StationName); name != "" {
		return name
	}
	if name := strings.TrimSpace(s.Username); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", s.ID)
}

// StationNames - справочник имен для отчетов; отсутствующая станция получает сырой идентификатор.
type StationNames map[int64]string

func NewStationNames(stations []Station) StationNames {
	names := make(StationNames, len(stations))
	for _, st := range stations {
		names[st.ID] = st.DisplayName()
	}
	return names
}

func (n StationNames) Name(id int64) string {
	if name, ok := n[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}
