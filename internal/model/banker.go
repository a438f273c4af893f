package model

// BankerCheckRow is one flat row of the loan/person/location/email/check
// join. Empty strings mean the left-joined side was absent.
type BankerCheckRow struct {
	Severity      string `json:"severity"`
	BankerCheckID string `json:"id"`
	PersonID      string `json:"personId"`
	AddressLine1  string `json:"addressLine1"`
	EmailID       string `json:"emailId"`
	ClientID      string `json:"clientId"`
	LocationType  string `json:"locationType"`
	SecurityType  string `json:"securityType"`
}

// Location is a person's address. Natural key: (AddressLine1, LocationType).
type Location struct {
	AddressLine1 string `json:"addressLine1"`
	LocationType string `json:"locationType"`
}

// Email is a person's email address. Natural key: EmailID.
type Email struct {
	EmailID string `json:"emailId"`
}

// Person is a borrower with deduplicated locations and emails.
type Person struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"clientId"`
	Locations []Location `json:"locations"`
	Emails    []Email    `json:"emails"`
}

// BankerCheck is a screening result. An empty Severity means none recorded.
type BankerCheck struct {
	ID       string `json:"id"`
	Severity string `json:"severity,omitempty"`
}
