package hive

// moderationRequest is the minimal text-moderation payload used to
// exercise the API key.
type moderationRequest struct {
	Input []moderationInput `json:"input"`
}

type moderationInput struct {
	Text string `json:"text"`
}

// KeyCheckCategory classifies the outcome of a key check.
type KeyCheckCategory string

const (
	KeyCheckOK           KeyCheckCategory = "ok"
	KeyCheckUnauthorized KeyCheckCategory = "unauthorized"
	KeyCheckForbidden    KeyCheckCategory = "forbidden"
	KeyCheckUnexpected   KeyCheckCategory = "unexpected"
)

// KeyCheckResult reports the HTTP outcome of the key check.
type KeyCheckResult struct {
	StatusCode int
	Category   KeyCheckCategory
	Body       string
}

// OK reports whether the key was accepted.
func (r KeyCheckResult) OK() bool {
	return r.Category == KeyCheckOK
}
