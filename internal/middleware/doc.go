// Package middleware provides the HTTP middleware chain for the photo
// viewer API.
//
// It includes:
//   - Access logging in W3C Extended Log Format
//   - Prometheus request metrics (count, duration, response size)
//   - Response compression for JSON payloads
package middleware
