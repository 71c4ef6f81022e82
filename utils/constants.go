// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// TaxonomyCachePrefix namespaces taxonomy levels in the generic cache.
const TaxonomyCachePrefix = "taxonomy:"

// OnboardingSessionPrefix namespaces onboarding wizard sessions.
const OnboardingSessionPrefix = "onboarding:"

// OnboardingSessionTTL is refreshed on every wizard step.
const OnboardingSessionTTL = 30 * time.Minute

// MaxUploadBytes caps multipart uploads of documents and listing media.
const MaxUploadBytes = 10 << 20
