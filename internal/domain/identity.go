package domain

// IdentityKind says which side of the marketplace the caller is on.
type IdentityKind string

const (
	IdentityClient       IdentityKind = "client"
	IdentityProvider     IdentityKind = "provider"
	IdentityUnaffiliated IdentityKind = "unaffiliated"
)

// Identity is the caller's resolved role for one request/response cycle.
// It is built once by middleware (user + profile lookup) and passed
// explicitly into services, so authorization checks never have to probe
// for profile existence themselves.
type Identity struct {
	UserID    int64
	Kind      IdentityKind
	ProfileID int64 // client or provider profile id, 0 when unaffiliated
}

func (id Identity) IsClient() bool   { return id.Kind == IdentityClient }
func (id Identity) IsProvider() bool { return id.Kind == IdentityProvider }

// PartyOn returns which party of the request the identity is, if any.
// Clients are matched by user id, providers by provider profile id.
func (id Identity) PartyOn(r *ServiceRequest) (Party, bool) {
	switch {
	case id.IsClient() && r.ClientID == id.UserID:
		return PartyClient, true
	case id.IsProvider() && r.ProviderID == id.ProfileID:
		return PartyProvider, true
	default:
		return "", false
	}
}
