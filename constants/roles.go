package constants

// Account roles carried in access-token claims.
const (
	RoleMember   = "member"
	RoleMerchant = "merchant"
)

// Access token lifetime in seconds (24h), shared by the auth controller and
// its cookie max-age.
const AccessTokenMaxAge = 24 * 60 * 60
