package generation

import "context"

// Request defaults
const (
	DefaultSystemInstruction = "You are an expert educational AI assistant helping students learn."
	DefaultTemperature       = float32(0.7)
	DefaultMaxTokens         = 4096
)

// Request is a single prompt sent to a content generation service.
// Zero values select the defaults above.
type Request struct {
	Prompt            string
	SystemInstruction string
	Temperature       float32
	MaxTokens         int
}

// WithDefaults returns a copy of r with unset fields filled in.
func (r Request) WithDefaults() Request {
	if r.SystemInstruction == "" {
		r.SystemInstruction = DefaultSystemInstruction
	}
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	return r
}

// Response is the text produced for a Request. Raw holds the provider's
// response object for diagnostics.
type Response struct {
	Text string
	Raw  any
}

// ContentGenerator defines the interface for text generation.
// This interface serves as a boundary between the application core and
// external AI/LLM services. Implementations make exactly one upstream call
// per Generate and never retry.
type ContentGenerator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
}

// GeneratorFunc adapts a function to the ContentGenerator interface.
type GeneratorFunc func(ctx context.Context, req Request) (*Response, error)

// Generate calls f(ctx, req).
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// Unavailable returns a generator that fails every call with err. It stands in
// for a provider whose credentials are missing so callers degrade per call
// instead of failing at startup.
func Unavailable(err error) ContentGenerator {
	return GeneratorFunc(func(context.Context, Request) (*Response, error) {
		return nil, err
	})
}
