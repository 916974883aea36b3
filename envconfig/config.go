// config.go - Haupt-Konfigurationsfunktionen fuer mrimotion
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (MRIMOTION_DEBUG)
// - Trajectory: Standard-Trajektorie fuer Multi-Shot (MRIMOTION_TRAJECTORY)
// - Var: Liest und bereinigt eine Environment-Variable
//
// Weitere Konfigurationen sind ausgelagert:
// - config_features.go: Seed, Worker und Bewegungs-Bereiche
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via MRIMOTION_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("MRIMOTION_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Trajectory gibt den Namen der Standard-Trajektorie zurueck
// Konfigurierbar via MRIMOTION_TRAJECTORY
// Default: blocked
func Trajectory() string {
	if s := strings.ToLower(String("MRIMOTION_TRAJECTORY")()); s != "" {
		return s
	}
	return "blocked"
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
