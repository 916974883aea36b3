// cmd_utils.go - Gemeinsame Hilfsfunktionen
// Hauptfunktionen: checkInput
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errNotAFile - Eingabepfad ist ein Verzeichnis
var errNotAFile = errors.New("input is not a regular file")

// checkInput - Prueft vor dem Laden, dass die Eingabedatei existiert
func checkInput(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	fi, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("input %q: %w", args[0], err)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("input %q: %w", args[0], errNotAFile)
	}
	return nil
}
