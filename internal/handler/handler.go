// Package handler is the HTTP layer that sits right after the router.
//
// It binds and validates requests with the validation package, calls the
// service layer and maps outcomes to status codes and response bodies.
package handler
