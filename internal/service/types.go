// Package service defines the backend-agnostic interface for Twilio resource operations.
package service

// Params holds list filter parameters keyed by API parameter name.
type Params map[string]string

// Conversation list parameters.
const (
	ParamStartDate = "StartDate"
	ParamEndDate   = "EndDate"
	ParamState     = "State"
)

// ParamDateLayout formats dates for ParamStartDate and ParamEndDate.
const ParamDateLayout = "2006-01-02T00:00:00Z"

// Page is one page of a paginated list response.
type Page[T any] struct {
	Items []T

	// NextPageURL is the cursor for the following page. Empty on the last page.
	NextPageURL string
}

// ConversationState is the lifecycle state of a Conversation.
type ConversationState string

const (
	StateActive   ConversationState = "active"
	StateInactive ConversationState = "inactive"
	StateClosed   ConversationState = "closed"
)

// ConversationStates lists every known state in API order.
var ConversationStates = []ConversationState{StateActive, StateInactive, StateClosed}

// Conversation represents a Conversations API conversation.
type Conversation struct {
	SID                 string            `json:"sid" yaml:"sid"`
	AccountSID          string            `json:"account_sid" yaml:"account_sid"`
	ChatServiceSID      string            `json:"chat_service_sid" yaml:"chat_service_sid"`
	MessagingServiceSID string            `json:"messaging_service_sid" yaml:"messaging_service_sid"`
	UniqueName          string            `json:"unique_name" yaml:"unique_name,omitempty"`
	FriendlyName        string            `json:"friendly_name" yaml:"friendly_name,omitempty"`
	DateCreated         string            `json:"date_created" yaml:"date_created"`
	DateUpdated         string            `json:"date_updated" yaml:"date_updated"`
	State               ConversationState `json:"state" yaml:"state"`
	URL                 string            `json:"url" yaml:"url"`
	Attributes          string            `json:"attributes" yaml:"attributes,omitempty"`
	Timers              Timers            `json:"timers" yaml:"timers"`
	Links               map[string]string `json:"links" yaml:"links,omitempty"`
}

// Timers holds the scheduled state transitions of a Conversation.
type Timers struct {
	DateInactive string `json:"date_inactive" yaml:"date_inactive,omitempty"`
	DateClosed   string `json:"date_closed" yaml:"date_closed,omitempty"`
}

// SyncService represents a Sync service instance.
type SyncService struct {
	SID                         string            `json:"sid" yaml:"sid"`
	AccountSID                  string            `json:"account_sid" yaml:"account_sid"`
	UniqueName                  string            `json:"unique_name" yaml:"unique_name,omitempty"`
	FriendlyName                string            `json:"friendly_name" yaml:"friendly_name,omitempty"`
	DateCreated                 string            `json:"date_created" yaml:"date_created"`
	DateUpdated                 string            `json:"date_updated" yaml:"date_updated"`
	URL                         string            `json:"url" yaml:"url"`
	WebhookURL                  string            `json:"webhook_url" yaml:"webhook_url,omitempty"`
	ReachabilityWebhooksEnabled bool              `json:"reachability_webhooks_enabled" yaml:"reachability_webhooks_enabled"`
	ACLEnabled                  bool              `json:"acl_enabled" yaml:"acl_enabled"`
	Links                       map[string]string `json:"links" yaml:"links,omitempty"`
}

// Document represents a Sync Document.
type Document struct {
	SID         string         `json:"sid" yaml:"sid"`
	UniqueName  string         `json:"unique_name" yaml:"unique_name,omitempty"`
	ServiceSID  string         `json:"service_sid" yaml:"service_sid"`
	Revision    string         `json:"revision" yaml:"revision"`
	Data        map[string]any `json:"data" yaml:"data,omitempty"`
	DateExpires string         `json:"date_expires" yaml:"date_expires,omitempty"`
	DateCreated string         `json:"date_created" yaml:"date_created"`
	DateUpdated string         `json:"date_updated" yaml:"date_updated"`
	CreatedBy   string         `json:"created_by" yaml:"created_by"`
	URL         string         `json:"url" yaml:"url"`
}

// Map represents a Sync Map.
type Map struct {
	SID         string            `json:"sid" yaml:"sid"`
	UniqueName  string            `json:"unique_name" yaml:"unique_name,omitempty"`
	ServiceSID  string            `json:"service_sid" yaml:"service_sid"`
	Revision    string            `json:"revision" yaml:"revision"`
	DateExpires string            `json:"date_expires" yaml:"date_expires,omitempty"`
	DateCreated string            `json:"date_created" yaml:"date_created"`
	DateUpdated string            `json:"date_updated" yaml:"date_updated"`
	CreatedBy   string            `json:"created_by" yaml:"created_by"`
	URL         string            `json:"url" yaml:"url"`
	Links       map[string]string `json:"links" yaml:"links,omitempty"`
}

// MapItem represents one key of a Sync Map.
type MapItem struct {
	Key         string         `json:"key" yaml:"key"`
	MapSID      string         `json:"map_sid" yaml:"map_sid"`
	ServiceSID  string         `json:"service_sid" yaml:"service_sid"`
	Revision    string         `json:"revision" yaml:"revision"`
	Data        map[string]any `json:"data" yaml:"data,omitempty"`
	DateExpires string         `json:"date_expires" yaml:"date_expires,omitempty"`
	DateCreated string         `json:"date_created" yaml:"date_created"`
	DateUpdated string         `json:"date_updated" yaml:"date_updated"`
	CreatedBy   string         `json:"created_by" yaml:"created_by"`
	URL         string         `json:"url" yaml:"url"`
}
