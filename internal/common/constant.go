package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// AuthStateKey is the cache key under which the singleton auth record lives.
const AuthStateKey = "auth"
