package repository

// Package repository contains data access layer abstractions for the entity
// graph. Implementations live in subpackages (e.g. postgres) and contain no
// business logic; authorization happens above this layer, never inside it.

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
