// Package finance models envelopes and the transaction inbox flow.
//
// Imported transactions land in the inbox (pending import) until confirmed or
// voided. A transaction is in at most one of {inbox, confirmed}; voided
// transactions are in neither. Amounts are positive integers in minor
// currency units.
package finance

import (
	"sort"
	"time"
)

// Transaction sources.
const (
	SourceManual   = "manual"
	SourceImported = "imported"
)

// Envelope is a spending envelope with an optional soft ceiling.
type Envelope struct {
	EnvelopeID  string
	Name        string
	SoftCeiling int
	Emoji       string
	IsPrivate   bool
}

// Transaction is a single money movement.
type Transaction struct {
	TransactionID string
	Amount        int
	EnvelopeID    string
	Source        string
	MerchantHint  string
	Note          string
	OccurredAt    time.Time
	PendingImport bool
	Voided        bool
}

// State holds the finance projection for one user.
type State struct {
	Envelopes    map[string]Envelope
	Transactions map[string]Transaction
}

// InitialState returns the empty finance state.
func InitialState() State {
	return State{}
}

// Inbox returns pending imported transactions ordered by occurrence.
func Inbox(state State) []Transaction {
	var inbox []Transaction
	for _, txn := range state.Transactions {
		if txn.PendingImport && !txn.Voided {
			inbox = append(inbox, txn)
		}
	}
	sort.Slice(inbox, func(i, j int) bool {
		if inbox[i].OccurredAt.Equal(inbox[j].OccurredAt) {
			return inbox[i].TransactionID < inbox[j].TransactionID
		}
		return inbox[i].OccurredAt.Before(inbox[j].OccurredAt)
	})
	return inbox
}

// SpentSince sums confirmed, non-voided spending per envelope at or after the
// given boundary. Inbox transactions do not count until confirmed.
func SpentSince(state State, since time.Time) map[string]int {
	spent := make(map[string]int)
	for _, txn := range state.Transactions {
		if txn.Voided || txn.PendingImport || txn.EnvelopeID == "" {
			continue
		}
		if txn.OccurredAt.Before(since) {
			continue
		}
		spent[txn.EnvelopeID] += txn.Amount
	}
	return spent
}
