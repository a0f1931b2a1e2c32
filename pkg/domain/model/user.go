package model

import "errors"

// Login failures carry the exact user-facing messages the storefront shows.
var (
	ErrUserNotFound    = errors.New("This user does not exist.")
	ErrInvalidPassword = errors.New("Invalid password.")
	ErrEmailTaken      = errors.New("email is already taken")
)

type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

type Address struct {
	ID           string `json:"id"`
	Name         string `json:"addressName"`
	LocalAddress string `json:"local_address"`
	City         string `json:"city"`
	District     string `json:"district"`
	State        string `json:"state"`
	Country      string `json:"country"`
	Pincode      string `json:"pincode"`
	Landmark     string `json:"landmark"`
}

// User is an identity record. Password is a plaintext mock credential,
// matching the seeded demo data; hardening it is out of scope.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"authority"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Phone     string    `json:"number"`
	Password  string    `json:"-"`
	Addresses []Address `json:"addresses"`
}
