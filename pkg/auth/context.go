package auth

import "context"

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal placed by the verifier middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p != nil
}

// GymFromContext returns the gym principal, if the request has one.
func GymFromContext(ctx context.Context) (GymPrincipal, bool) {
	p, _ := FromContext(ctx)
	g, ok := p.(GymPrincipal)
	return g, ok
}

// MemberFromContext returns the member principal, if the request has one.
func MemberFromContext(ctx context.Context) (MemberPrincipal, bool) {
	p, _ := FromContext(ctx)
	m, ok := p.(MemberPrincipal)
	return m, ok
}
