package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// clipboardWrite is replaced in tests; headless machines have no clipboard.
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard puts text on the system clipboard.
func CopyToClipboard(text string) error {
	if err := clipboardWrite(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
