package checkout

// Environment selects which gateway deployment the client talks to
type Environment string

const (
	EnvironmentSandbox Environment = "sandbox"
	EnvironmentLive    Environment = "live"
)

var baseURLs = map[Environment]string{
	EnvironmentSandbox: "https://sandbox.checkout.rdcard.net/api/v1",
	EnvironmentLive:    "https://checkout.rdcard.net/api/v1",
}

// ResolveBaseURL returns override when set, otherwise the URL of env.
// Unknown or empty environments fall back to the sandbox.
func ResolveBaseURL(env Environment, override string) string {
	if override != "" {
		return override
	}
	if u, ok := baseURLs[env]; ok {
		return u
	}
	return baseURLs[EnvironmentSandbox]
}

// resolveEnvironment normalises env the same way ResolveBaseURL does
func resolveEnvironment(env Environment) Environment {
	if _, ok := baseURLs[env]; ok {
		return env
	}
	return EnvironmentSandbox
}
