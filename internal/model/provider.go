package model

import "time"

// ProviderRequest is an outbound request made to an external data provider
// on behalf of an entity (loan id, lead id).
type ProviderRequest struct {
	ID           string     `json:"id"`
	EntityID     string     `json:"entityId"`
	EntityType   string     `json:"entityType"`
	RequestType  string     `json:"requestType"`
	Provider     string     `json:"provider"`
	State        string     `json:"state"`
	RequestTime  *time.Time `json:"requestTime"`
	ResponseTime *time.Time `json:"responseTime"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

// ProviderLog is one request/response exchange with an external provider.
// Payload and Response hold previews; the Full fields hold the bodies.
type ProviderLog struct {
	ID           string     `json:"id"`
	EntityID     string     `json:"entityId"`
	EntityType   string     `json:"entityType"`
	Provider     string     `json:"provider"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	HTTPStatus   string     `json:"httpStatus"`
	Payload      string     `json:"payload"`
	Response     string     `json:"response"`
	FullPayload  string     `json:"fullPayload"`
	FullResponse string     `json:"fullResponse"`
	CreatedAt    *time.Time `json:"createdAt"`
	ModifiedAt   *time.Time `json:"modifiedAt"`
}

// LogFilter selects provider logs for one entity.
type LogFilter struct {
	EntityID string
	// ExcludeTypePattern is a SQL LIKE pattern; matching log types are
	// skipped. Empty disables the filter.
	ExcludeTypePattern string
}
