package llm

import "context"

// Profile is the generation profile fixed per deployment. Every request
// sent through WithProfile gets these sampling settings unless the caller
// already set them.
type Profile struct {
	Temperature      float64
	TopP             float64
	TopK             int
	MaxOutputTokens  int
	ResponseMIMEType string
}

// DefaultProfile returns the tutor's conversational profile.
func DefaultProfile() Profile {
	return Profile{
		Temperature:      1,
		TopP:             0.95,
		TopK:             40,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "text/plain",
	}
}

// ProfileProvider is a decorator that applies a Profile to every request.
type ProfileProvider struct {
	inner   Provider
	profile Profile
}

// WithProfile wraps a Provider so requests inherit the given profile.
func WithProfile(p Provider, profile Profile) Provider {
	return &ProfileProvider{inner: p, profile: profile}
}

func (p *ProfileProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return p.inner.Generate(ctx, p.profile.Apply(req))
}

func (p *ProfileProvider) ModelID() string {
	return p.inner.ModelID()
}

// Apply fills the zero-valued sampling fields of req from the profile.
// Structured requests keep their JSON output type.
func (p Profile) Apply(req Request) Request {
	if req.Temperature == 0 {
		req.Temperature = p.Temperature
	}
	if req.TopP == 0 {
		req.TopP = p.TopP
	}
	if req.TopK == 0 {
		req.TopK = p.TopK
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = p.MaxOutputTokens
	}
	if req.ResponseMIMEType == "" && req.Schema == nil {
		req.ResponseMIMEType = p.ResponseMIMEType
	}
	return req
}
