package flows

import (
	"context"

	"twilly/internal/nav"
	"twilly/internal/output"
	"twilly/internal/service"
)

// Sync lists every Sync service and browses them until Back.
func (f *Flows) Sync(ctx context.Context) error {
	b := &nav.Browser[service.SyncService]{
		Prompter: f.Prompter,
		Out:      f.Out,
		Noun:     "Sync Service",
		Label:    output.SyncServiceLabel,
		Actions:  nav.SyncServiceMenu,
		Handle:   f.handleSyncService,
	}
	return browse[service.SyncService](ctx, f, b, "Sync Services", f.Service.ListSyncServices, f.Service.NextSyncServices)
}

func (f *Flows) handleSyncService(ctx context.Context, s *service.SyncService, action nav.Action) (nav.Transition, error) {
	switch action {
	case nav.Documents:
		return nav.Stay, f.documents(ctx, s)
	case nav.Maps:
		return nav.Stay, f.maps(ctx, s)
	case nav.ListDetails:
		return f.details(s)
	case nav.Delete:
		return f.remove(ctx, "Sync Service", s.SID, func(ctx context.Context) error {
			return f.Service.DeleteSyncService(ctx, s.SID)
		})
	}
	return unsupported(action)
}

func (f *Flows) documents(ctx context.Context, s *service.SyncService) error {
	b := &nav.Browser[service.Document]{
		Prompter: f.Prompter,
		Out:      f.Out,
		Noun:     "Document",
		Label:    output.DocumentLabel,
		Actions:  nav.DocumentMenu,
		Handle: func(ctx context.Context, d *service.Document, action nav.Action) (nav.Transition, error) {
			switch action {
			case nav.ListDetails:
				return f.details(d)
			case nav.Delete:
				return f.remove(ctx, "Document", d.SID, func(ctx context.Context) error {
					return f.Service.DeleteDocument(ctx, s.SID, d.SID)
				})
			}
			return unsupported(action)
		},
	}
	first := func(ctx context.Context) (service.Page[service.Document], error) {
		return f.Service.ListDocuments(ctx, s.SID)
	}
	return browse[service.Document](ctx, f, b, "Documents", first, f.Service.NextDocuments)
}

func (f *Flows) maps(ctx context.Context, s *service.SyncService) error {
	b := &nav.Browser[service.Map]{
		Prompter: f.Prompter,
		Out:      f.Out,
		Noun:     "Map",
		Label:    output.MapLabel,
		Actions:  nav.MapMenu,
		Handle: func(ctx context.Context, m *service.Map, action nav.Action) (nav.Transition, error) {
			switch action {
			case nav.MapItems:
				return nav.Stay, f.mapItems(ctx, s, m)
			case nav.ListDetails:
				return f.details(m)
			case nav.Delete:
				return f.remove(ctx, "Map", m.SID, func(ctx context.Context) error {
					return f.Service.DeleteMap(ctx, s.SID, m.SID)
				})
			}
			return unsupported(action)
		},
	}
	first := func(ctx context.Context) (service.Page[service.Map], error) {
		return f.Service.ListMaps(ctx, s.SID)
	}
	return browse[service.Map](ctx, f, b, "Maps", first, f.Service.NextMaps)
}

func (f *Flows) mapItems(ctx context.Context, s *service.SyncService, m *service.Map) error {
	b := &nav.Browser[service.MapItem]{
		Prompter: f.Prompter,
		Out:      f.Out,
		Noun:     "Map Item",
		Label:    output.MapItemLabel,
		Actions:  nav.MapItemMenu,
		Handle: func(ctx context.Context, item *service.MapItem, action nav.Action) (nav.Transition, error) {
			switch action {
			case nav.ListDetails:
				return f.details(item)
			case nav.Delete:
				return f.remove(ctx, "Map Item", item.Key, func(ctx context.Context) error {
					return f.Service.DeleteMapItem(ctx, s.SID, m.SID, item.Key)
				})
			}
			return unsupported(action)
		},
	}
	first := func(ctx context.Context) (service.Page[service.MapItem], error) {
		return f.Service.ListMapItems(ctx, s.SID, m.SID)
	}
	return browse[service.MapItem](ctx, f, b, "Map Items", first, f.Service.NextMapItems)
}
