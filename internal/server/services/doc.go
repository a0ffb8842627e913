// Package services contains the notes server business logic: credential
// verification, the login/refresh/logout orchestration, refresh token
// revocation, note authorization and the user, note, collaboration and
// export use cases built on top of them.
//
// Services return the sentinel errors from package common (wrapped with a
// caller-facing message) for client failures; anything else is an
// unclassified failure that transports must hide.
package services

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/dmitrijs2005/notesapp/internal/server/services")
