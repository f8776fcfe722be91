package domain

// Step names a unit of work in the decisioning workflow. Steps update
// confidence dimensions and may reach a completed state; the governor uses
// the completed set to avoid re-triggering a step.
type Step string

const (
	StepSales        Step = "sales"
	StepIdentity     Step = "identity"
	StepUnderwriting Step = "underwriting"
	StepSanction     Step = "sanction"
)
