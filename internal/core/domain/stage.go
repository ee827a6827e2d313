package domain

// Standard stage names threaded through a publish run. Stage names are an
// open vocabulary; these are the ones the default run order uses.
const (
	StageSelectors  = "selectors"
	StageValidators = "validators"
	StageExtractors = "extractors"
	StageConforms   = "conforms"
)

// DefaultStageOrder returns the processing stages a full publish run walks
// through after selection, in order.
func DefaultStageOrder() []string {
	return []string{StageValidators, StageExtractors, StageConforms}
}
