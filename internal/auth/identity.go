package auth

// Identity is the normalized profile an OAuth provider hands back after a
// completed handshake. It carries facts only; resolving it to a principal
// is the federated strategy's job.
type Identity struct {
	Provider       string // e.g. "google"
	ProviderUserID string // provider-scoped subject identifier
	Email          string // email asserted by the provider
	EmailVerified  bool
}
