package constants

// Session and context keys
const (
	SessionCookieName = "lostfound_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
)

// Authentication
const (
	MinPasswordLength = 8
	MaxUsernameLength = 150
)

// Listing
const (
	// ItemPageSize is the fixed page size of the public item list.
	ItemPageSize = 12
	// HomeRecentLimit is how many recent items per type the home page shows.
	HomeRecentLimit = 5
	// AdminPageSize is the page size of the moderation queue.
	AdminPageSize = 25
)

// Item field limits
const (
	MaxTitleLength    = 200
	MaxLocationLength = 200
)

// ImageUploadDir is the directory under the media root where item
// images are stored. It is recorded verbatim in ItemImage paths.
const ImageUploadDir = "item_images"
