package journal

// Actor names used in the Step field of entries. The governor and the system
// write entries alongside the four workflow steps.
const (
	ActorSystem       = "system"
	ActorGovernor     = "governor"
	ActorSales        = "sales"
	ActorVerification = "verification"
	ActorUnderwriting = "underwriting"
	ActorSanction     = "sanction"
)
