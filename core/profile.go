package core

import "time"

// Profile is a user registered against a wallet address
type Profile struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"displayName"`
	Bio           string    `json:"bio"`
	ProfileImage  string    `json:"profileImage"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProfileUpdate lists the mutable profile fields; nil means unchanged
type ProfileUpdate struct {
	DisplayName  *string
	Bio          *string
	ProfileImage *string
}

// Empty reports whether the update changes nothing
func (u ProfileUpdate) Empty() bool {
	return u.DisplayName == nil && u.Bio == nil && u.ProfileImage == nil
}
