// Package github implements a DocumentSource backed by the GitHub API.
//
// A collection maps to one repository ("owner/repo"). Fetch walks the
// repository tree at the configured branch and returns every Markdown
// file as a source document. LastModified uses the repository's
// pushed-at timestamp, so the freshness gate never costs a tree walk
// for an unchanged repository.
//
// # Authentication
//
// Two authentication methods are supported:
//
//   - Personal Access Tokens (PAT): classic or fine-grained tokens created at
//     github.com/settings/tokens. Requires 'repo' scope for private repositories.
//
//   - OAuth access tokens obtained out of band.
//
// Both methods provide 5,000 API requests per hour for authenticated users.
// Unauthenticated requests are limited to 60 per hour and are not supported.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket algorithm limits requests to
//     approximately 1.2 requests per second, staying well under the 5,000/hour
//     limit whilst maximising throughput.
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When limits are exhausted, it waits until
//     the reset time before continuing.
//
// # Limitations
//
//   - Binary files are not indexed (Markdown content only)
//   - File size limit: 1MB per file (GitHub API inline blob constraint)
package github
