package httptransport

import (
	"lendgate/internal/identity"
	"lendgate/internal/intent"
	"lendgate/internal/sanction"
	"lendgate/internal/session"
	"lendgate/internal/underwriting"
)

// Step responses pair the step result with the post-step session snapshot so
// the UI can refresh without a second round trip.

type intentResponse struct {
	intent.Result
	Session session.Snapshot `json:"session"`
}

type verifyResponse struct {
	identity.Result
	Session session.Snapshot `json:"session"`
}

type creditResponse struct {
	underwriting.CreditResult
	Session session.Snapshot `json:"session"`
}

type slipResponse struct {
	underwriting.SlipResult
	Session session.Snapshot `json:"session"`
}

type sanctionResponse struct {
	Letter  *sanction.Letter `json:"letter"`
	Session session.Snapshot `json:"session"`
}

type eligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

type explanationResponse struct {
	Explanation string `json:"explanation"`
}
