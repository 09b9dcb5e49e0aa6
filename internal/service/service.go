// Package service holds the business layer between handlers and
// repositories.
//
// Services receive validated payloads, call the repositories through
// narrow interfaces and log the business events of each operation.
package service
