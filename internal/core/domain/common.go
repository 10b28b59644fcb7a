package domain

import "time"

// AuditFields carries the who/when columns every persisted entity shares.
// CreatedBy and LastUpdatedBy hold the acting user's ID from the gateway.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
