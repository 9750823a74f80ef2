// Package services provides domain services that orchestrate business
// operations across multiple domain entities. It implements workflows that
// don't naturally belong to a single aggregate root.
//
// The package includes:
//   - DeliveryAssigner: picks a delivery person for a confirmed order and
//     creates the Delivery record
package services
