// internal/domain/entity/completion.go
package entity

// CompletionCandidate is one (model, API version) pair attempted against
// the remote text-generation service. Candidate lists are ordered and
// ephemeral, rebuilt per request.
type CompletionCandidate struct {
	Model      string
	APIVersion string
}

// CompletionAttempt is the transient outcome of a single candidate call.
// It is discarded once the fallback sweep returns.
type CompletionAttempt struct {
	Success    bool
	Text       string
	HTTPStatus int
	Body       string
}
