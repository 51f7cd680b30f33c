package models

import "time"

// Shop shares its primary key with the owning user: one shop per seller.
type Shop struct {
	ID                string  `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	Phone             *string `json:"phone,omitempty" db:"phone"`
	CountryID         *int64  `json:"countryId,omitempty" db:"country_id"`
	CountryName       *string `json:"countryName,omitempty" db:"country_name"`
	StateID           *int64  `json:"stateId,omitempty" db:"state_id"`
	StateName         *string `json:"stateName,omitempty" db:"state_name"`
	CityID            *int64  `json:"cityId,omitempty" db:"city_id"`
	CityName          *string `json:"cityName,omitempty" db:"city_name"`
	ZipCode           *string `json:"zipCode,omitempty" db:"zip_code"`
	Description       *string `json:"description,omitempty" db:"description"`
	MembershipPlanID  *string `json:"membershipPlanId,omitempty" db:"membership_plan_id"`
	ValidVerification bool    `json:"validVerification" db:"valid_verification"`
	ValidBy           *string `json:"validBy,omitempty" db:"valid_by"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// MembershipPlan is the model for the 'membership_plans' table.
type MembershipPlan struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Price       float64 `json:"price" db:"price"`
}
