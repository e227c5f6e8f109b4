package model

// AccessToken is the object signed into bearer tokens. Issuing tokens is left
// to the identity service; this backend only verifies them.
type AccessToken struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
