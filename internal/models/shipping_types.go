package models

import "time"

// ShippingAddress is the model for the 'shipping_addresses' table.
type ShippingAddress struct {
	ID                 string  `json:"id" db:"id"`
	UserID             string  `json:"userId" db:"user_id"`
	AddressType        string  `json:"addressType" db:"address_type"`
	AddressTitle       string  `json:"addressTitle" db:"address_title"`
	FirstName          string  `json:"firstName" db:"first_name"`
	LastName           string  `json:"lastName" db:"last_name"`
	Email              string  `json:"email" db:"email"`
	PhoneNumber        string  `json:"phoneNumber" db:"phone_number"`
	CountryID          *int64  `json:"countryId,omitempty" db:"country_id"`
	CountryName        *string `json:"countryName,omitempty" db:"country_name"`
	StateID            *int64  `json:"stateId,omitempty" db:"state_id"`
	StateName          *string `json:"stateName,omitempty" db:"state_name"`
	CityID             *int64  `json:"cityId,omitempty" db:"city_id"`
	CityName           *string `json:"cityName,omitempty" db:"city_name"`
	ZipCode            *string `json:"zipCode,omitempty" db:"zip_code"`
	AddressDescription *string `json:"addressDescription,omitempty" db:"address_description"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
