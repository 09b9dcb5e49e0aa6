// Package repository handles all interactions with the document store.
//
// It issues the MongoDB queries that fetch, persist, update and delete
// data, so the service layer never sees driver types. Driver failures are
// classified with storeerr before they leave the package.
package repository
