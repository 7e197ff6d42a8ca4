package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	CoinStatusPending = "pending"
	CoinStatusActive  = "active"
	CoinStatusFailed  = "failed"
)

// ScrapedContent is an imported piece of content a coin can be minted
// from. The backend only records it; fetching happens client side.
type ScrapedContent struct {
	ID          uuid.UUID
	URL         string
	Platform    string
	Title       string
	Description string
	Author      string
	Image       string
	Tags        []string
	ScrapedAt   time.Time
}

type Coin struct {
	ID               uuid.UUID
	Name             string
	Symbol           string
	Address          *string
	CreatorWallet    string
	Status           string
	ScrapedContentID *uuid.UUID
	IPFSURI          string
	ChainID          string
	TxHash           string
	Description      string
	Image            string
	CreatedAt        time.Time
}

// CoinUpdate is applied when the minting flow reports progress.
type CoinUpdate struct {
	Address *string
	Status  *string
	ChainID *string
	TxHash  *string
}
