// Package models defines the core domain models for the settlement tracker.
//
// # Records
//
//   - Member: a person who can pay for or owe a share of a content
//   - Category: an expense category, optionally carrying a preset split rule
//   - Content: one shared expense with its liquidation (split) table
//   - LiquidationEntry: one row of a content's split table
//   - BalanceEntry: an aggregated net amount owed between two members
//
// Members and categories are identified by integer ids and owned by the
// member directory; contents use UUID strings. BalanceEntry is a read-side
// projection rebuilt on every aggregation pass and is never persisted.
//
// # Design Principles
//
// 1. **Avoid circular references**: relationships carry ids, not pointers
// 2. **Wire tolerance**: flags that arrive in multiple JSON shapes are
// normalized through PaidStatus instead of ad-hoc branching
// 3. **Derived state is recomputed, not trusted**: Content.Finished is
// recalculated from the liquidation table after every mutation
package models
