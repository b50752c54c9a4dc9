package nav

import "fmt"

// Action is a menu entry. The set is closed; every value has a display name
// in actionNames.
type Action int

const (
	Back Action = iota
	Exit

	Conversations
	Sync

	GetConversation
	ListConversations
	DeleteConversation
	DeleteAllConversations

	Documents
	Maps
	MapItems
	ListDetails
	Delete
)

var actionNames = map[Action]string{
	Back:                   "Back",
	Exit:                   "Exit",
	Conversations:          "Conversations",
	Sync:                   "Sync",
	GetConversation:        "Get conversation",
	ListConversations:      "List Conversations",
	DeleteConversation:     "Delete Conversation",
	DeleteAllConversations: "Delete all Conversations",
	Documents:              "Documents",
	Maps:                   "Maps",
	MapItems:               "Map Items",
	ListDetails:            "List Details",
	Delete:                 "Delete",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Menus for each resource kind, in display order.
var (
	RootMenu = []Action{Conversations, Sync, Exit}

	ConversationMenu = []Action{GetConversation, ListConversations, DeleteConversation, DeleteAllConversations, Back, Exit}

	// ConversationEntryMenu is offered after a conversation was fetched by SID.
	ConversationEntryMenu = []Action{ListDetails, Delete, Back, Exit}

	SyncServiceMenu = []Action{Documents, Maps, ListDetails, Delete, Back, Exit}
	DocumentMenu    = []Action{ListDetails, Delete, Back, Exit}
	MapMenu         = []Action{MapItems, ListDetails, Delete, Back, Exit}
	MapItemMenu     = []Action{ListDetails, Delete, Back, Exit}
)
