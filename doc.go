// Package auth provides the session and authorization core for RagAI-Q:
// credential verification against tenant-scoped accounts, enrichment of
// verified identities into signed session claims, a stateless JWT session
// store, and a route-authorization gate that enforces a static policy table
// over protected route prefixes.
//
// Sessions:
//   - A successful login produces a SessionClaims record (account id, email,
//     display name, role, organization id and organization display name)
//     signed into a self-contained bearer token. No server-side session table
//     exists; decode cost is a single signature verification and revocation
//     before expiry is deliberately not supported.
//   - SessionPatch + TokenService.Update re-issue a token when profile fields
//     change without extending its lifetime.
//
// Route gate:
//   - PolicyTable maps route prefixes to claim requirements. Evaluation is
//     ordered and first-match-wins; "authenticated" is always checked before
//     "authorized" so an anonymous request to an admin prefix lands on the
//     login page, not on the authenticated landing page. Malformed and
//     expired tokens are indistinguishable from absent ones.
//
// Activity sinks:
//   - ActivitySink receives login, refresh, and logout events best-effort so
//     tenants can forward audit trails without blocking authentication.
package auth
