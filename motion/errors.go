package motion

import "errors"

var (
	// ErrUnsupportedTrajectory wird bei unbekannter Trajectory zurueckgegeben
	ErrUnsupportedTrajectory = errors.New("motion: trajectory not supported")

	// ErrInvalidShots wird bei nshots < 1 oder Shot-Index ausserhalb zurueckgegeben
	ErrInvalidShots = errors.New("motion: number of shots must be >= 1")

	// ErrInvalidShape wird bei zu kleinem Rang oder inkonsistenter Shape zurueckgegeben
	ErrInvalidShape = errors.New("motion: invalid shape")

	// ErrNoSource wird zurueckgegeben wenn keine Zufallsquelle uebergeben wurde
	ErrNoSource = errors.New("motion: no random source")

	// ErrNoGenerator wird zurueckgegeben wenn kein Transform-Generator (oder keine Transformation) vorliegt
	ErrNoGenerator = errors.New("motion: no transform generator")
)
