// Package models contains the GORM persistence models. Each model maps to
// one table and converts to and from its domain type with ToDomain and
// FromDomain, keeping GORM tags out of the domain layer.
package models
