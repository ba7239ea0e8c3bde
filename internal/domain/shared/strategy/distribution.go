// Package strategy defines the pluggable ways an expense pool is spread over
// cart items. Implementations live in the expense package.
package strategy

import "github.com/shopspring/decimal"

// DistributionMethod names how a shared expense pool is spread over cart items
type DistributionMethod string

const (
	// DistributionDivided splits the pool evenly across all items
	DistributionDivided DistributionMethod = "divided"
	// DistributionEach charges the full pool to every item
	DistributionEach DistributionMethod = "each"
)

// String returns the string representation of the method
func (m DistributionMethod) String() string {
	return string(m)
}

// IsValid returns true if the method is known
func (m DistributionMethod) IsValid() bool {
	return m == DistributionDivided || m == DistributionEach
}

// ExpenseDistributionStrategy computes per-item charges for one expense pool
type ExpenseDistributionStrategy interface {
	// Name is the wire name of the method, e.g. "divided"
	Name() string
	Description() string
	Method() DistributionMethod
	// Shares returns one charge per item, in item order. count is at least 1.
	Shares(amount decimal.Decimal, count int) []decimal.Decimal
}

// Descriptor carries the identity shared by every strategy implementation.
// Embed it and supply Shares.
type Descriptor struct {
	method      DistributionMethod
	description string
}

// NewDescriptor creates a Descriptor
func NewDescriptor(method DistributionMethod, description string) Descriptor {
	return Descriptor{method: method, description: description}
}

func (d Descriptor) Name() string               { return string(d.method) }
func (d Descriptor) Description() string        { return d.description }
func (d Descriptor) Method() DistributionMethod { return d.method }
