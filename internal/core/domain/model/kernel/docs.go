// Package kernel provides the domain primitives shared by the customer, order and
// ledger models.
//
// The package includes:
//   - ID: positive int64 identifiers; new aggregates get snowflake IDs
//   - UUID: operation identifiers grouping the ledger entries of one unit of work
//   - Money: two-digit fixed-point amounts backed by shopspring/decimal
//
// All values are immutable and safe for concurrent use.
package kernel
