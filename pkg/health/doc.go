// Package health serves liveness and readiness probes.
//
// Readiness runs named checks concurrently under a shared timeout and
// answers 503 when any of them fails. Responses are plain text, or JSON when
// the client sends Accept: application/json or ?format=json:
//
//	{"checks":{"jar":{"status":"healthy"}},"status":"healthy"}
//
// Usage:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "jar": sqliteJar.Healthcheck,
//	}))
package health
