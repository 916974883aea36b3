// MODUL: trajectory
// ZWECK: Zuordnung der k-space Zeilen (Phase-Encode Linien) zu Shots
// INPUT: Trajectory, Shot-Index, Anzahl Shots, Breite W
// OUTPUT: Zeilenindizes eines Shots bzw. Zuordnung Zeile -> Shot
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: keine (nur Standardbibliothek)
// HINWEISE: Beide Trajektorien partitionieren [0, W) exakt, letzter Block wird auf W begrenzt

package motion

import (
	"fmt"
	"strings"
)

// Trajectory ist die geschlossene Menge der unterstuetzten Aufnahme-Reihenfolgen
type Trajectory int

const (
	// Blocked: jeder Shot nimmt einen zusammenhaengenden Block (1 1 2 2 3 3)
	Blocked Trajectory = iota
	// Interleaved: Shots wechseln sich zeilenweise ab (1 2 3 1 2 3)
	Interleaved
)

var trajectoryNames = map[Trajectory]string{
	Blocked:     "blocked",
	Interleaved: "interleaved",
}

func (t Trajectory) String() string {
	if s, ok := trajectoryNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Trajectory(%d)", int(t))
}

// Valid meldet ob t ein bekannter Wert ist
func (t Trajectory) Valid() bool {
	_, ok := trajectoryNames[t]
	return ok
}

// ParseTrajectory liest den Namen einer Trajektorie (case-insensitive)
func ParseTrajectory(s string) (Trajectory, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range trajectoryNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedTrajectory, s)
}

// MarshalText und UnmarshalText erlauben die Nutzung als Flag- oder Config-Wert
func (t Trajectory) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTrajectory, t)
	}
	return []byte(t.String()), nil
}

func (t *Trajectory) UnmarshalText(b []byte) error {
	v, err := ParseTrajectory(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// blockSize ist ceil(width / nshots), nshots muss >= 1 sein
func blockSize(nshots, width int) int {
	return (width + nshots - 1) / nshots
}

// Lines gibt die Zeilen von shot in aufsteigender Reihenfolge zurueck
func (t Trajectory) Lines(shot, nshots, width int) ([]int, error) {
	if err := checkPartition(t, nshots, width); err != nil {
		return nil, err
	}
	if shot < 0 || shot >= nshots {
		return nil, fmt.Errorf("%w: shot %d of %d", ErrInvalidShots, shot, nshots)
	}

	var lines []int
	switch t {
	case Blocked:
		offset := blockSize(nshots, width)
		start, end := min(shot*offset, width), min((shot+1)*offset, width)
		for l := start; l < end; l++ {
			lines = append(lines, l)
		}
	case Interleaved:
		for l := shot; l < width; l += nshots {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// Assignment gibt fuer jede Zeile in [0, width) den zugehoerigen Shot zurueck
func (t Trajectory) Assignment(nshots, width int) ([]int, error) {
	if err := checkPartition(t, nshots, width); err != nil {
		return nil, err
	}

	shots := make([]int, width)
	switch t {
	case Blocked:
		offset := blockSize(nshots, width)
		for l := range shots {
			shots[l] = l / offset
		}
	case Interleaved:
		for l := range shots {
			shots[l] = l % nshots
		}
	}
	return shots, nil
}

func checkPartition(t Trajectory, nshots, width int) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedTrajectory, t)
	}
	if nshots < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidShots, nshots)
	}
	if width < 0 {
		return fmt.Errorf("%w: width %d", ErrInvalidShape, width)
	}
	return nil
}
