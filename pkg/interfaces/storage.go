package interfaces

import (
	"github.com/goliatone/go-glossary/pkg/storage"
)

// StorageProvider is the storage contract the runtime container consumes. It
// aliases pkg/storage.Provider so wiring code imports this package alongside
// the other runtime contracts.
type StorageProvider = storage.Provider

// Rows aliases storage.Rows.
type Rows = storage.Rows

// Result aliases storage.Result.
type Result = storage.Result

// Transaction aliases storage.Transaction.
type Transaction = storage.Transaction
