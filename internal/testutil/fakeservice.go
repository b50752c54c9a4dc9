// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"twilly/internal/service"
)

// DefaultPageSize is the page size used when FakeService.PageSize is zero.
const DefaultPageSize = 50

// ErrNotFound is the classified error returned for missing resources.
var ErrNotFound = &service.Error{
	Kind:    service.NotFound,
	Status:  404,
	Code:    20404,
	Message: "The requested resource was not found",
}

// ErrRemote is a classified non-recoverable error for injection.
var ErrRemote = &service.Error{
	Kind:    service.RemoteFailure,
	Status:  500,
	Code:    20500,
	Message: "Internal Server Error",
}

// FakeService is an in-memory implementation of service.Service for testing.
// Lists are served in pages of PageSize; the cursor of each page points into
// a snapshot taken when the first page was requested.
type FakeService struct {
	mu sync.Mutex

	PageSize int

	conversations []service.Conversation
	services      []service.SyncService
	documents     map[string][]service.Document // serviceSID -> documents
	maps          map[string][]service.Map      // serviceSID -> maps
	items         map[string][]service.MapItem  // serviceSID/mapSID -> items

	snapshots map[string]any
	seq       int
	calls     map[string]int

	// LastParams holds the params of the most recent ListConversations call.
	LastParams service.Params

	// Cursors records every cursor passed to a Next method, in call order.
	Cursors []string

	// Error injection for testing
	GetConversationErr        error
	ListConversationsErr      error
	NextConversationsErr      error
	DeleteConversationErr     error
	DeleteAllConversationsErr error
	ListSyncServicesErr       error
	DeleteSyncServiceErr      error
	ListDocumentsErr          error
	DeleteDocumentErr         error
	ListMapsErr               error
	DeleteMapErr              error
	ListMapItemsErr           error
	DeleteMapItemErr          error
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		documents: make(map[string][]service.Document),
		maps:      make(map[string][]service.Map),
		items:     make(map[string][]service.MapItem),
		snapshots: make(map[string]any),
		calls:     make(map[string]int),
	}
}

// AddConversation adds a conversation.
func (f *FakeService) AddConversation(c service.Conversation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations = append(f.conversations, c)
}

// AddSyncService adds a Sync service.
func (f *FakeService) AddSyncService(s service.SyncService) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services = append(f.services, s)
}

// AddDocument adds a document to a Sync service.
func (f *FakeService) AddDocument(d service.Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents[d.ServiceSID] = append(f.documents[d.ServiceSID], d)
}

// AddMap adds a map to a Sync service.
func (f *FakeService) AddMap(m service.Map) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maps[m.ServiceSID] = append(f.maps[m.ServiceSID], m)
}

// AddMapItem adds an item to a map.
func (f *FakeService) AddMapItem(item service.MapItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := itemsKey(item.ServiceSID, item.MapSID)
	f.items[k] = append(f.items[k], item)
}

// Calls returns how many times method was called.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Conversations returns a copy of the stored conversations.
func (f *FakeService) Conversations() []service.Conversation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.Conversation(nil), f.conversations...)
}

// SyncServices returns a copy of the stored Sync services.
func (f *FakeService) SyncServices() []service.SyncService {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.SyncService(nil), f.services...)
}

// GetConversation implements service.Service.
func (f *FakeService) GetConversation(ctx context.Context, sid string) (service.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["GetConversation"]++
	if f.GetConversationErr != nil {
		return service.Conversation{}, f.GetConversationErr
	}
	for _, c := range f.conversations {
		if c.SID == sid || (c.UniqueName != "" && c.UniqueName == sid) {
			return c, nil
		}
	}
	return service.Conversation{}, ErrNotFound
}

// ListConversations implements service.Service. Only the State param filters.
func (f *FakeService) ListConversations(ctx context.Context, params service.Params) (service.Page[service.Conversation], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListConversations"]++
	f.LastParams = params
	if f.ListConversationsErr != nil {
		return service.Page[service.Conversation]{}, f.ListConversationsErr
	}
	var matched []service.Conversation
	for _, c := range f.conversations {
		if state, ok := params[service.ParamState]; ok && string(c.State) != state {
			continue
		}
		matched = append(matched, c)
	}
	return firstPage(f, "conversations", matched), nil
}

// NextConversations implements service.Service.
func (f *FakeService) NextConversations(ctx context.Context, cursor string) (service.Page[service.Conversation], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["NextConversations"]++
	f.Cursors = append(f.Cursors, cursor)
	if f.NextConversationsErr != nil {
		return service.Page[service.Conversation]{}, f.NextConversationsErr
	}
	return nextPage[service.Conversation](f, cursor)
}

// DeleteConversation implements service.Service.
func (f *FakeService) DeleteConversation(ctx context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteConversation"]++
	if f.DeleteConversationErr != nil {
		return f.DeleteConversationErr
	}
	for i, c := range f.conversations {
		if c.SID == sid || (c.UniqueName != "" && c.UniqueName == sid) {
			f.conversations = append(f.conversations[:i], f.conversations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteAllConversations implements service.Service.
func (f *FakeService) DeleteAllConversations(ctx context.Context, state *service.ConversationState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteAllConversations"]++
	if f.DeleteAllConversationsErr != nil {
		return f.DeleteAllConversationsErr
	}
	var kept []service.Conversation
	for _, c := range f.conversations {
		if state != nil && c.State != *state {
			kept = append(kept, c)
		}
	}
	f.conversations = kept
	return nil
}

// ListSyncServices implements service.Service.
func (f *FakeService) ListSyncServices(ctx context.Context) (service.Page[service.SyncService], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListSyncServices"]++
	if f.ListSyncServicesErr != nil {
		return service.Page[service.SyncService]{}, f.ListSyncServicesErr
	}
	return firstPage(f, "services", f.services), nil
}

// NextSyncServices implements service.Service.
func (f *FakeService) NextSyncServices(ctx context.Context, cursor string) (service.Page[service.SyncService], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["NextSyncServices"]++
	f.Cursors = append(f.Cursors, cursor)
	return nextPage[service.SyncService](f, cursor)
}

// DeleteSyncService implements service.Service.
func (f *FakeService) DeleteSyncService(ctx context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteSyncService"]++
	if f.DeleteSyncServiceErr != nil {
		return f.DeleteSyncServiceErr
	}
	for i, s := range f.services {
		if s.SID == sid {
			f.services = append(f.services[:i], f.services[i+1:]...)
			delete(f.documents, sid)
			delete(f.maps, sid)
			return nil
		}
	}
	return ErrNotFound
}

// ListDocuments implements service.Service.
func (f *FakeService) ListDocuments(ctx context.Context, serviceSID string) (service.Page[service.Document], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListDocuments"]++
	if f.ListDocumentsErr != nil {
		return service.Page[service.Document]{}, f.ListDocumentsErr
	}
	return firstPage(f, "documents", f.documents[serviceSID]), nil
}

// NextDocuments implements service.Service.
func (f *FakeService) NextDocuments(ctx context.Context, cursor string) (service.Page[service.Document], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["NextDocuments"]++
	f.Cursors = append(f.Cursors, cursor)
	return nextPage[service.Document](f, cursor)
}

// DeleteDocument implements service.Service.
func (f *FakeService) DeleteDocument(ctx context.Context, serviceSID, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteDocument"]++
	if f.DeleteDocumentErr != nil {
		return f.DeleteDocumentErr
	}
	docs := f.documents[serviceSID]
	for i, d := range docs {
		if d.SID == sid {
			f.documents[serviceSID] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ListMaps implements service.Service.
func (f *FakeService) ListMaps(ctx context.Context, serviceSID string) (service.Page[service.Map], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListMaps"]++
	if f.ListMapsErr != nil {
		return service.Page[service.Map]{}, f.ListMapsErr
	}
	return firstPage(f, "maps", f.maps[serviceSID]), nil
}

// NextMaps implements service.Service.
func (f *FakeService) NextMaps(ctx context.Context, cursor string) (service.Page[service.Map], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["NextMaps"]++
	f.Cursors = append(f.Cursors, cursor)
	return nextPage[service.Map](f, cursor)
}

// DeleteMap implements service.Service.
func (f *FakeService) DeleteMap(ctx context.Context, serviceSID, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteMap"]++
	if f.DeleteMapErr != nil {
		return f.DeleteMapErr
	}
	maps := f.maps[serviceSID]
	for i, m := range maps {
		if m.SID == sid {
			f.maps[serviceSID] = append(maps[:i], maps[i+1:]...)
			delete(f.items, itemsKey(serviceSID, sid))
			return nil
		}
	}
	return ErrNotFound
}

// ListMapItems implements service.Service.
func (f *FakeService) ListMapItems(ctx context.Context, serviceSID, mapSID string) (service.Page[service.MapItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListMapItems"]++
	if f.ListMapItemsErr != nil {
		return service.Page[service.MapItem]{}, f.ListMapItemsErr
	}
	return firstPage(f, "items", f.items[itemsKey(serviceSID, mapSID)]), nil
}

// NextMapItems implements service.Service.
func (f *FakeService) NextMapItems(ctx context.Context, cursor string) (service.Page[service.MapItem], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["NextMapItems"]++
	f.Cursors = append(f.Cursors, cursor)
	return nextPage[service.MapItem](f, cursor)
}

// DeleteMapItem implements service.Service.
func (f *FakeService) DeleteMapItem(ctx context.Context, serviceSID, mapSID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteMapItem"]++
	if f.DeleteMapItemErr != nil {
		return f.DeleteMapItemErr
	}
	k := itemsKey(serviceSID, mapSID)
	items := f.items[k]
	for i, item := range items {
		if item.Key == key {
			f.items[k] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func itemsKey(serviceSID, mapSID string) string {
	return serviceSID + "/" + mapSID
}

func (f *FakeService) pageSize() int {
	if f.PageSize > 0 {
		return f.PageSize
	}
	return DefaultPageSize
}

// firstPage snapshots all and returns its first page. Callers hold f.mu.
func firstPage[T any](f *FakeService, kind string, all []T) service.Page[T] {
	f.seq++
	token := fmt.Sprintf("%s-%d", kind, f.seq)
	f.snapshots[token] = append([]T(nil), all...)
	return slicePage(token, all, 0, f.pageSize())
}

// nextPage serves the page a cursor points at. Callers hold f.mu.
func nextPage[T any](f *FakeService, cursor string) (service.Page[T], error) {
	u, err := url.Parse(cursor)
	if err != nil {
		return service.Page[T]{}, fmt.Errorf("invalid cursor %q: %w", cursor, err)
	}
	offset, err := strconv.Atoi(u.Query().Get("offset"))
	if err != nil {
		return service.Page[T]{}, fmt.Errorf("invalid cursor %q: %w", cursor, err)
	}
	all, ok := f.snapshots[u.Host].([]T)
	if !ok || offset > len(all) {
		return service.Page[T]{}, ErrNotFound
	}
	return slicePage(u.Host, all, offset, f.pageSize()), nil
}

func slicePage[T any](token string, all []T, offset, size int) service.Page[T] {
	end := min(offset+size, len(all))
	page := service.Page[T]{Items: append([]T(nil), all[offset:end]...)}
	if end < len(all) {
		page.NextPageURL = fmt.Sprintf("fake://%s?offset=%d", token, end)
	}
	return page
}
