package query

import (
	"dominicbreuker/tsize/pkg/config"
	"dominicbreuker/tsize/pkg/termsize"
	"fmt"
	"io"
)

// printSize writes size to w in the given format, in the style of resize(1).
func printSize(w io.Writer, size termsize.Size, format config.Format) error {
	var err error

	switch format {
	case config.FormatNone:
	case config.FormatPlain:
		_, err = fmt.Fprintf(w, "%d %d\n", size.Rows, size.Cols)
	case config.FormatSh:
		_, err = fmt.Fprintf(w, "COLUMNS=%d;\nLINES=%d;\nexport COLUMNS LINES;\n", size.Cols, size.Rows)
	case config.FormatCsh:
		_, err = fmt.Fprintf(w, "set noglob;\nsetenv COLUMNS '%d';\nsetenv LINES '%d';\nunset noglob;\n", size.Cols, size.Rows)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if err != nil {
		return fmt.Errorf("writing size: %w", err)
	}
	return nil
}
