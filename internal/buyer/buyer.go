package buyer

// Buyer is an account that can own cart lines and orders.
// Orders keep their own copy of shipping/contact fields, so the profile
// here stays minimal.
type Buyer struct {
	ID        int    `json:"buyerId"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
