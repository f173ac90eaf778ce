// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain entities so the domain layer stays free
// of ORM tags.
//
// Layout:
//   - base.go: embedded timestamp and owner columns
//   - identity.go: users
//   - legal.go: clients, cases, deadlines and documents
package models
