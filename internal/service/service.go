// Package service defines the backend-agnostic interface for Twilio resource operations.
package service

import "context"

// Service defines the interface for remote resource operations.
// All Twilio API calls go through this interface.
// Navigation code never talks HTTP directly.
//
// List methods return the first page; the matching Next method fetches the
// page identified by a cursor taken verbatim from Page.NextPageURL.
// Failures are returned as *Error where the backend could classify them.
type Service interface {
	// GetConversation fetches a conversation by SID or unique name.
	GetConversation(ctx context.Context, sid string) (Conversation, error)

	// ListConversations returns the first page of conversations matching params.
	// Recognised params: StartDate, EndDate, State.
	ListConversations(ctx context.Context, params Params) (Page[Conversation], error)
	NextConversations(ctx context.Context, cursor string) (Page[Conversation], error)

	// DeleteConversation deletes a conversation by SID.
	DeleteConversation(ctx context.Context, sid string) error

	// DeleteAllConversations deletes every conversation, or only those in
	// state when state is non-nil.
	DeleteAllConversations(ctx context.Context, state *ConversationState) error

	ListSyncServices(ctx context.Context) (Page[SyncService], error)
	NextSyncServices(ctx context.Context, cursor string) (Page[SyncService], error)
	DeleteSyncService(ctx context.Context, sid string) error

	ListDocuments(ctx context.Context, serviceSID string) (Page[Document], error)
	NextDocuments(ctx context.Context, cursor string) (Page[Document], error)
	DeleteDocument(ctx context.Context, serviceSID, sid string) error

	ListMaps(ctx context.Context, serviceSID string) (Page[Map], error)
	NextMaps(ctx context.Context, cursor string) (Page[Map], error)
	DeleteMap(ctx context.Context, serviceSID, sid string) error

	ListMapItems(ctx context.Context, serviceSID, mapSID string) (Page[MapItem], error)
	NextMapItems(ctx context.Context, cursor string) (Page[MapItem], error)
	DeleteMapItem(ctx context.Context, serviceSID, mapSID, key string) error
}
