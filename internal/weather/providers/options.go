package providers

// Option customises a provider.
type Option func(*options)

type options struct {
	baseURL string
	backoff BackoffConfig
}

// WithBaseURL points the provider at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithBackoff overrides the retry policy.
func WithBackoff(b BackoffConfig) Option {
	return func(o *options) { o.backoff = b }
}

func buildOptions(defaultURL string, opts []Option) options {
	o := options{baseURL: defaultURL, backoff: DefaultBackoff}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
