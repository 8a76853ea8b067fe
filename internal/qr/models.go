package qr

import "time"

// IssuedToken is the bookkeeping record written on every issuance. The
// Used flag is informational; verification never consults it.
type IssuedToken struct {
	Token     string
	TokenID   string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Issued is what the transport returns for a freshly generated QR.
type Issued struct {
	Token           string
	TokenID         string
	ExpiresAt       time.Time
	ValidForSeconds int
}
