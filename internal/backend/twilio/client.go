// Package twilio implements the service.Service interface over the Twilio REST API.
package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2/clientcredentials"
	"google.golang.org/api/googleapi"

	"twilly/internal/config"
	"twilly/internal/logging"
	"twilly/internal/service"
)

const (
	// DefaultConversationsURL is the Conversations API root.
	DefaultConversationsURL = "https://conversations.twilio.com/v1"

	// DefaultSyncURL is the Sync API root.
	DefaultSyncURL = "https://sync.twilio.com/v1"

	// DefaultTokenURL issues OAuth2 access tokens.
	DefaultTokenURL = "https://oauth.twilio.com/v2/token"

	// PageSize is the number of records requested per page.
	PageSize = 50
)

// Client implements service.Service using the Twilio REST API.
type Client struct {
	http *http.Client

	// Set when requests use HTTP basic auth rather than a bearer token.
	accountSID string
	authToken  string

	conversationsURL string
	syncURL          string
}

var _ service.Service = (*Client)(nil)

// New creates a client from the stored credentials.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	creds, err := cfg.LoadCredentials()
	if err != nil {
		return nil, err
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("auth: %w (run: twilly login)", err)
	}
	return NewWithCredentials(ctx, creds), nil
}

// NewWithCredentials creates a client for creds. With OAuth client
// credentials configured, requests carry a bearer token fetched and refreshed
// through ctx; otherwise they use the account SID and auth token.
func NewWithCredentials(ctx context.Context, creds config.Credentials) *Client {
	c := &Client{
		conversationsURL: DefaultConversationsURL,
		syncURL:          DefaultSyncURL,
	}
	if creds.BaseURLs.Conversations != "" {
		c.conversationsURL = creds.BaseURLs.Conversations
	}
	if creds.BaseURLs.Sync != "" {
		c.syncURL = creds.BaseURLs.Sync
	}

	if creds.OAuth != nil {
		cc := clientcredentials.Config{
			ClientID:     creds.OAuth.ClientID,
			ClientSecret: creds.OAuth.ClientSecret,
			TokenURL:     creds.OAuth.TokenURL,
		}
		if cc.TokenURL == "" {
			cc.TokenURL = DefaultTokenURL
		}
		c.http = cc.Client(ctx)
		return c
	}

	c.http = http.DefaultClient
	c.accountSID = creds.AccountSID
	c.authToken = creds.AuthToken
	return c
}

// GetConversation fetches a conversation by SID or unique name.
func (c *Client) GetConversation(ctx context.Context, sid string) (service.Conversation, error) {
	var conv service.Conversation
	err := c.do(ctx, http.MethodGet, c.conversationsURL+"/Conversations/"+url.PathEscape(sid), &conv)
	return conv, err
}

// ListConversations returns the first page of conversations matching params.
func (c *Client) ListConversations(ctx context.Context, params service.Params) (service.Page[service.Conversation], error) {
	return getPage[service.Conversation](ctx, c, listURL(c.conversationsURL+"/Conversations", params))
}

// NextConversations fetches the conversation page at cursor.
func (c *Client) NextConversations(ctx context.Context, cursor string) (service.Page[service.Conversation], error) {
	return getPage[service.Conversation](ctx, c, cursor)
}

// DeleteConversation deletes a conversation by SID.
func (c *Client) DeleteConversation(ctx context.Context, sid string) error {
	return c.do(ctx, http.MethodDelete, c.conversationsURL+"/Conversations/"+url.PathEscape(sid), nil)
}

// DeleteAllConversations lists every conversation, optionally in one state,
// and deletes them one by one. Conversations that disappear in between are
// skipped.
func (c *Client) DeleteAllConversations(ctx context.Context, state *service.ConversationState) error {
	params := service.Params{}
	if state != nil {
		params[service.ParamState] = string(*state)
	}

	var sids []string
	page, err := c.ListConversations(ctx, params)
	for {
		if err != nil {
			return err
		}
		for _, conv := range page.Items {
			sids = append(sids, conv.SID)
		}
		if page.NextPageURL == "" {
			break
		}
		page, err = c.NextConversations(ctx, page.NextPageURL)
	}

	logger := logging.FromContext(ctx)
	logger.Debug("deleting conversations", "count", len(sids))
	for _, sid := range sids {
		if err := c.DeleteConversation(ctx, sid); err != nil {
			if service.IsNotFound(err) {
				logger.Debug("conversation already gone", "sid", sid)
				continue
			}
			return fmt.Errorf("delete conversation %s: %w", sid, err)
		}
	}
	return nil
}

// ListSyncServices returns the first page of Sync services.
func (c *Client) ListSyncServices(ctx context.Context) (service.Page[service.SyncService], error) {
	return getPage[service.SyncService](ctx, c, listURL(c.syncURL+"/Services", nil))
}

// NextSyncServices fetches the Sync service page at cursor.
func (c *Client) NextSyncServices(ctx context.Context, cursor string) (service.Page[service.SyncService], error) {
	return getPage[service.SyncService](ctx, c, cursor)
}

// DeleteSyncService deletes a Sync service and everything in it.
func (c *Client) DeleteSyncService(ctx context.Context, sid string) error {
	return c.do(ctx, http.MethodDelete, c.servicePath(sid), nil)
}

// ListDocuments returns the first page of documents in a Sync service.
func (c *Client) ListDocuments(ctx context.Context, serviceSID string) (service.Page[service.Document], error) {
	return getPage[service.Document](ctx, c, listURL(c.servicePath(serviceSID)+"/Documents", nil))
}

// NextDocuments fetches the document page at cursor.
func (c *Client) NextDocuments(ctx context.Context, cursor string) (service.Page[service.Document], error) {
	return getPage[service.Document](ctx, c, cursor)
}

// DeleteDocument deletes a document.
func (c *Client) DeleteDocument(ctx context.Context, serviceSID, sid string) error {
	return c.do(ctx, http.MethodDelete, c.servicePath(serviceSID)+"/Documents/"+url.PathEscape(sid), nil)
}

// ListMaps returns the first page of maps in a Sync service.
func (c *Client) ListMaps(ctx context.Context, serviceSID string) (service.Page[service.Map], error) {
	return getPage[service.Map](ctx, c, listURL(c.servicePath(serviceSID)+"/Maps", nil))
}

// NextMaps fetches the map page at cursor.
func (c *Client) NextMaps(ctx context.Context, cursor string) (service.Page[service.Map], error) {
	return getPage[service.Map](ctx, c, cursor)
}

// DeleteMap deletes a map and its items.
func (c *Client) DeleteMap(ctx context.Context, serviceSID, sid string) error {
	return c.do(ctx, http.MethodDelete, c.mapPath(serviceSID, sid), nil)
}

// ListMapItems returns the first page of items in a map.
func (c *Client) ListMapItems(ctx context.Context, serviceSID, mapSID string) (service.Page[service.MapItem], error) {
	return getPage[service.MapItem](ctx, c, listURL(c.mapPath(serviceSID, mapSID)+"/Items", nil))
}

// NextMapItems fetches the map item page at cursor.
func (c *Client) NextMapItems(ctx context.Context, cursor string) (service.Page[service.MapItem], error) {
	return getPage[service.MapItem](ctx, c, cursor)
}

// DeleteMapItem deletes a map item by key.
func (c *Client) DeleteMapItem(ctx context.Context, serviceSID, mapSID, key string) error {
	return c.do(ctx, http.MethodDelete, c.mapPath(serviceSID, mapSID)+"/Items/"+url.PathEscape(key), nil)
}

func (c *Client) servicePath(serviceSID string) string {
	return c.syncURL + "/Services/" + url.PathEscape(serviceSID)
}

func (c *Client) mapPath(serviceSID, mapSID string) string {
	return c.servicePath(serviceSID) + "/Maps/" + url.PathEscape(mapSID)
}

func listURL(base string, params service.Params) string {
	q := url.Values{}
	q.Set("PageSize", strconv.Itoa(PageSize))
	for k, v := range params {
		q.Set(k, v)
	}
	return base + "?" + q.Encode()
}

// pageMeta is the "meta" object of every Twilio list response. Key names
// the field holding the records.
type pageMeta struct {
	Key         string `json:"key"`
	NextPageURL string `json:"next_page_url"`
}

func getPage[T any](ctx context.Context, c *Client, pageURL string) (service.Page[T], error) {
	var raw map[string]json.RawMessage
	if err := c.do(ctx, http.MethodGet, pageURL, &raw); err != nil {
		return service.Page[T]{}, err
	}

	var meta pageMeta
	if err := json.Unmarshal(raw["meta"], &meta); err != nil {
		return service.Page[T]{}, remoteError(fmt.Errorf("decode page meta: %w", err))
	}

	page := service.Page[T]{NextPageURL: meta.NextPageURL}
	if data, ok := raw[meta.Key]; ok {
		if err := json.Unmarshal(data, &page.Items); err != nil {
			return service.Page[T]{}, remoteError(fmt.Errorf("decode %s: %w", meta.Key, err))
		}
	}
	return page, nil
}

func (c *Client) do(ctx context.Context, method, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return remoteError(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.accountSID != "" {
		req.SetBasicAuth(c.accountSID, c.authToken)
	}

	logger := logging.FromContext(ctx)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("twilio request failed", "method", method, "url", reqURL, "error", err)
		return remoteError(err)
	}
	defer resp.Body.Close()
	logger.Debug("twilio request", "method", method, "url", reqURL, "status", resp.StatusCode)

	if err := googleapi.CheckResponse(resp); err != nil {
		return classify(err)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return remoteError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// errorBody is the JSON body of a failed Twilio request.
type errorBody struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func classify(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return remoteError(err)
	}

	serr := &service.Error{Kind: service.RemoteFailure, Status: gerr.Code, Err: err}
	if gerr.Code == http.StatusNotFound {
		serr.Kind = service.NotFound
	}

	var body errorBody
	if json.Unmarshal([]byte(gerr.Body), &body) == nil {
		serr.Code = body.Code
		serr.Message = body.Message
		serr.MoreInfo = body.MoreInfo
	}
	return serr
}

func remoteError(err error) error {
	return &service.Error{Kind: service.RemoteFailure, Err: err}
}
