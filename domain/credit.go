package domain

import (
	"errors"
)

var (
	MessageSuccessGetUserCredits    = "user credits retrieved successfully"
	MessageSuccessGetCreditPackages = "credit packages retrieved successfully"

	MessageFailedGetUserCredits    = "failed to retrieve user credits"
	MessageFailedGetCreditPackages = "failed to retrieve credit packages"

	ErrInsufficientCredits    = errors.New("insufficient credits")
	ErrInvalidCreditPackage   = errors.New("invalid credit package")
	ErrRemoteStoreUnavailable = errors.New("remote store unavailable")
)

const (
	// Feature costs
	COST_STORY_GENERATION = 15
	COST_COLORING_PAGE    = 10
	COST_ILLUSTRATION     = 5
)

type (
	CreditPackage struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		Credits   int     `json:"credits"`
		Price     float64 `json:"price"`
		Currency  string  `json:"currency"`
		IsPopular bool    `json:"is_popular"`
	}

	UserCredits struct {
		Balance       int  `json:"balance"`
		RemoteBalance int  `json:"remote_balance,omitempty"`
		RemoteSynced  bool `json:"remote_synced"`
	}
)

// Static catalog; packages are not user data and do not live in either store.
var CreditPackages = []*CreditPackage{
	{ID: "starter", Name: "Starter", Credits: 50, Price: 25000, Currency: "IDR"},
	{ID: "family", Name: "Family", Credits: 120, Price: 50000, Currency: "IDR", IsPopular: true},
	{ID: "mega", Name: "Mega", Credits: 300, Price: 100000, Currency: "IDR"},
}

func CreditPackageByID(id string) *CreditPackage {
	for _, pkg := range CreditPackages {
		if pkg.ID == id {
			return pkg
		}
	}
	return nil
}
