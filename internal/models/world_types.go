package models

// Geographic reference data used by shops, products and shipping addresses.
// These tables are seeded once and only ever read.

type Country struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}

type State struct {
	ID        int64  `json:"id" db:"id"`
	CountryID int64  `json:"countryId" db:"country_id"`
	Name      string `json:"name" db:"name"`
}

type City struct {
	ID      int64  `json:"id" db:"id"`
	StateID int64  `json:"stateId" db:"state_id"`
	Name    string `json:"name" db:"name"`
}
