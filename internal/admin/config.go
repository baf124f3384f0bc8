// Package admin declares the moderation UI configuration. Instead of
// registering entities into a global admin site, each moderated entity
// gets an explicit ModerationConfig value listing what the queue page
// shows and which bulk actions it offers.
package admin

// Column is one displayed column in a moderation list.
type Column struct {
	Key   string
	Label string
}

// FilterOption is one selectable value of a list filter.
type FilterOption struct {
	Value string
	Label string
}

// Filter is one dropdown filter on a moderation list.
type Filter struct {
	Param   string
	Label   string
	Options []FilterOption
}

// BulkAction is an operation applied to a selected set of rows.
type BulkAction struct {
	Name  string
	Label string
}

// ModerationConfig describes the moderation page of one entity.
type ModerationConfig struct {
	Entity       string
	Columns      []Column
	Filters      []Filter
	SearchFields []string
	BulkActions  []BulkAction
}

// ItemModeration mirrors the item queue: list columns, approval and
// type filters, text search, and the single approve bulk action.
var ItemModeration = ModerationConfig{
	Entity: "items",
	Columns: []Column{
		{Key: "title", Label: "Title"},
		{Key: "item_type", Label: "Type"},
		{Key: "reporter", Label: "Reporter"},
		{Key: "reported_at", Label: "Reported"},
		{Key: "is_approved", Label: "Approved"},
	},
	Filters: []Filter{
		{
			Param: "approved",
			Label: "Approval",
			Options: []FilterOption{
				{Value: "", Label: "All"},
				{Value: "pending", Label: "Pending"},
				{Value: "approved", Label: "Approved"},
			},
		},
		{
			Param: "type",
			Label: "Type",
			Options: []FilterOption{
				{Value: "", Label: "All"},
				{Value: "lost", Label: "Lost"},
				{Value: "found", Label: "Found"},
			},
		},
	},
	SearchFields: []string{"title", "description", "location", "reporter username"},
	BulkActions: []BulkAction{
		{Name: "approve", Label: "Approve selected items"},
	},
}
