package usecase

import (
	"fmt"

	"cityseed/internal/seed/domain/model"
)

// CompletionMessage renders the line printed after a run. The count comes from
// what the store acknowledged, not from the length of the input.
func CompletionMessage(report *model.SeedReport) string {
	if report == nil {
		return "No cities were inserted."
	}
	if report.Inserted == report.Requested {
		return fmt.Sprintf("Inserted %d cities for country %s successfully.", report.Inserted, report.CountryID.Hex())
	}
	return fmt.Sprintf("Inserted %d of %d cities for country %s.", report.Inserted, report.Requested, report.CountryID.Hex())
}
