package driver

import (
	"errors"

	"layoutlint/internal/fix"
)

// Write stores every changed file back to disk, BOM restored. All files are
// attempted; the joined error lists the ones that failed.
func Write(report *Report, sink Sink) error {
	var errs []error
	for i := range report.Results {
		res := &report.Results[i]
		if !res.Changed() || res.File.Path != res.Original.Path {
			continue
		}
		emit(sink, res.Path, StageWrite, StatusWorking)
		if err := fix.WriteFile(res.Path, res.File.Encoded()); err != nil {
			errs = append(errs, err)
			emit(sink, res.Path, StageWrite, StatusError)
			continue
		}
		emit(sink, res.Path, StageWrite, StatusDone)
	}
	return errors.Join(errs...)
}
