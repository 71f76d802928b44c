package cli

import (
	"io"
	"os"

	"termagent/internal/doctor"
)

func Doctor(out io.Writer, configPath string) (int, error) {
	report := doctor.GenerateReport(doctor.Options{
		ConfigPath: configPath,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
	})

	if err := doctor.Write(out, report); err != nil {
		return 1, err
	}
	return report.ExitCode(), nil
}
