// Package validate checks a persisted catalog for data-quality defects.
//
// Each [Validator] inspects the whole catalog and returns an errors.List of
// diagnostics, one per offending code and defect. Validators never fail:
// a defective catalog produces a longer report, not an error. [Run]
// collects the lists of several validators into a [Report], which is
// written next to the catalog as validation_errors.json.
package validate
