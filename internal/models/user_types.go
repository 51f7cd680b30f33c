package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the model for the 'users' table.
type User struct {
	ID            string  `json:"id" db:"id"`
	Name          string  `json:"name" db:"name"`
	Email         string  `json:"email" db:"email"`
	PasswordHash  string  `json:"-" db:"password_hash"`
	Role          string  `json:"role" db:"role"`
	RememberToken *string `json:"-" db:"remember_token"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Joined, populated manually
	Profile *Profile `json:"profile,omitempty" db:"-"`
}

// Profile shares its primary key with the owning user.
type Profile struct {
	ID              string  `json:"id" db:"id"`
	Slug            string  `json:"slug" db:"slug"`
	PhoneNumber     *string `json:"phoneNumber,omitempty" db:"phone_number"`
	TaxIDNumber     *string `json:"taxIdNumber,omitempty" db:"tax_id_number"`
	ProfilePicture  *string `json:"profilePicture,omitempty" db:"profile_picture"`
	CoverImage      *string `json:"coverImage,omitempty" db:"cover_image"`
	NotifyOnMessage bool    `json:"notifyOnMessage" db:"notify_on_message"`
	ShowEmail       bool    `json:"showEmail" db:"show_email"`
	ShowPhoneNumber bool    `json:"showPhoneNumber" db:"show_phone_number"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
