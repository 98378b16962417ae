package printergen

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/printergen/pkg/errors"
	"github.com/arthur-debert/printergen/pkg/logging"
	"github.com/arthur-debert/printergen/pkg/output"
)

// ReportError prints "printergen: Error: <message>" to w, followed by the
// usage of cmd for command line mistakes.
func ReportError(w io.Writer, cmd *cobra.Command, err error) {
	logger := logging.GetLogger("cmd")
	logger.Debug().
		Str("code", string(errors.GetErrorCode(err))).
		Interface("details", errors.GetErrorDetails(err)).
		Err(err).
		Msg("Command failed")

	r, rErr := output.NewRenderer(w, false)
	if rErr != nil {
		fmt.Fprintf(w, "%s: Error: %s\n", ProgramName, errors.Message(err))
	} else if rErr = r.RenderError(ProgramName, err); rErr != nil {
		fmt.Fprintf(w, "%s: Error: %s\n", ProgramName, errors.Message(err))
	}

	if cmd != nil && errors.ShowsUsage(err) {
		fmt.Fprint(w, cmd.UsageString())
	}
}
