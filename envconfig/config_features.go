// config_features.go - Zufall, Parallelitaet und Bewegungs-Bereiche
//
// Dieses Modul enthaelt:
// - Seed fuer reproduzierbare Korruption
// - Achsen-Layout der Even/Odd-Injektion
// - Worker-Anzahl fuer parallele Shots
// - Standard-Bereiche der zufaelligen affinen Bewegung
package envconfig

// =============================================================================
// Zufall
// =============================================================================

var (
	// Seed ist der Standard-Seed der CLI
	// Konfigurierbar via MRIMOTION_SEED
	Seed = Uint64("MRIMOTION_SEED", 0)
)

// =============================================================================
// Layout
// =============================================================================

var (
	// ChannelFirst waehlt das Layout [..., C, H, W] fuer die Even/Odd-Injektion
	// Konfigurierbar via MRIMOTION_CHANNEL_FIRST
	ChannelFirst = Bool("MRIMOTION_CHANNEL_FIRST")
)

// =============================================================================
// Parallelitaets-Einstellungen
// =============================================================================

var (
	// Workers setzt die Anzahl paralleler Shot-Berechnungen
	// Konfigurierbar via MRIMOTION_WORKERS
	Workers = Uint("MRIMOTION_WORKERS", 1)
)

// =============================================================================
// Bewegungs-Bereiche
// =============================================================================

var (
	// MaxDegrees ist die maximale Rotation pro Shot in Grad
	// Konfigurierbar via MRIMOTION_MAX_DEGREES
	MaxDegrees = Float("MRIMOTION_MAX_DEGREES", 5)

	// MaxTranslate ist die maximale Translation pro Shot als Anteil der Bildgroesse
	// Konfigurierbar via MRIMOTION_MAX_TRANSLATE
	MaxTranslate = Float("MRIMOTION_MAX_TRANSLATE", 0.05)
)
