// Package models defines the persisted domain records for outingsplit.
//
// # Models
//
//   - Group: a set of people who go out together
//   - Member: a person, referenced by ID from groups and activities
//   - Activity: a shared cost inside a group, split among participants
//   - Settlement: money one member already paid back to another
//
// Balances and suggested transfers are not models: they are recomputed
// from activities and settlements on every read by the calculator package.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are ID strings, so there are no cyclic graphs
// 2. **Integer money**: every amount is in minor currency units (cents)
// 3. **Group owns its ledger**: deleting a group removes its activities and settlements
package models
