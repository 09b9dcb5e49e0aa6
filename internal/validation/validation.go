// Package validation contains the logic for validating
// request data.
//
// It binds request bodies and path params with Echo, runs the
// `validator` rules declared in struct tags and converts failures into
// field errors the client can understand.
package validation
