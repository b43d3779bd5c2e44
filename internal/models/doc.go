// Package models defines the core domain models for JustSplit.
//
// # Current Models
//
//   - Event: A trip or occasion that expenses are recorded against
//   - Expense: A shared expense paid by one participant on behalf of several
//   - Participant: A person splitting expenses, identified by an opaque ID
//   - Balance: A suggested debtor-to-creditor transfer produced by the netting engine
//   - Settlement: A recorded payment between participants clearing debts
//   - User: A registered account in the CyberEco Hub
//
// # Design Principles
//
// 1. **Engine inputs are transient**: Expense, Event and Participant are plain
// values handed to the timeline and calculator packages; each call is a pure,
// stateless transform over them.
// 2. **Avoid circular references**: relationships use ID strings instead of pointers.
// 3. **Lenient participants**: an expense may reference a participant ID that is
// not in an event's member list; the calculators treat it as a zero-balance
// source rather than erroring.
package models
