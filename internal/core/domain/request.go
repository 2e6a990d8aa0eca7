package domain

// Well-known proxy API methods.
const (
	MethodClaimSearch = "claim_search"
	MethodResolve     = "resolve"
)

// Request is a single proxied API call. The method and params are built by
// the content-fetching layer and are opaque to the gateway client.
type Request struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Response is the decoded gateway payload.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}
