// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding the destination, store and agent assignments
//   - Status: the closed lifecycle enum and its transition table
//   - Item: a requested product line
//   - StatusChanged, AgentAssigned: events recorded by every state change
//
// Key business rules:
//   - PENDING -> CONFIRMED -> PROCESSING -> PACKED -> OUT_FOR_DELIVERY -> DELIVERED -> REFUNDED
//   - PENDING, CONFIRMED, PROCESSING and PACKED orders can be CANCELLED
//   - OUT_FOR_DELIVERY and DELIVERED orders cannot be cancelled
//   - CONFIRMED requires a store, PROCESSING requires an agent
//   - terminal states release the assigned agent; cancelling after PROCESSING requires a restock
package order
