package domain

import (
	"time"
)

// Status is the moderation state of a review.
type Status string

const (
	// StatusPending is the state of every newly submitted review.
	StatusPending Status = "pending"
	// StatusApproved marks a review as publicly visible on the storefront.
	StatusApproved Status = "approved"
	// StatusTrashed soft-hides a review; it can be restored to pending.
	StatusTrashed Status = "trashed"
)

// ParseStatus coerces a raw status string to a Status. Unknown or empty
// values fall back to the given default: storefront scripts and the admin UI
// both rely on this tolerance, so an unrecognized filter never errors.
func ParseStatus(raw string, fallback Status) Status {
	switch Status(raw) {
	case StatusPending, StatusApproved, StatusTrashed:
		return Status(raw)
	default:
		return fallback
	}
}

// Intent is a moderation action requested against a review.
type Intent string

const (
	IntentApprove Intent = "approve"
	IntentTrash   Intent = "trash"
	IntentRestore Intent = "restore"
	IntentDelete  Intent = "delete"
)

// ParseIntent validates a raw intent string. Unlike statuses there is no
// tolerant fallback: an unknown intent must be rejected, never defaulted.
func ParseIntent(raw string) (Intent, bool) {
	switch Intent(raw) {
	case IntentApprove, IntentTrash, IntentRestore, IntentDelete:
		return Intent(raw), true
	default:
		return "", false
	}
}

// Transition returns the status resulting from applying a non-delete intent
// to the current status. Allowed transitions:
//
//	pending  --approve--> approved
//	pending  --trash----> trashed
//	approved --trash----> trashed
//	trashed  --restore--> pending
func Transition(current Status, intent Intent) (Status, bool) {
	switch intent {
	case IntentApprove:
		if current == StatusPending {
			return StatusApproved, true
		}
	case IntentTrash:
		if current == StatusPending || current == StatusApproved {
			return StatusTrashed, true
		}
	case IntentRestore:
		if current == StatusTrashed {
			return StatusPending, true
		}
	}
	return current, false
}

// Review is a single customer submission about a product. Every review
// belongs to exactly one shop (the tenant scope) and one product; product
// identifiers are serialized as strings because they can exceed the
// JavaScript safe-integer range.
type Review struct {
	ID             string    `json:"id"`
	ShopDomain     string    `json:"shop_domain"`
	ProductID      int64     `json:"product_id,string"`
	ProductHandle  string    `json:"product_handle,omitempty"`
	Rating         int       `json:"rating"`
	Title          string    `json:"title,omitempty"`
	Body           string    `json:"body"`
	AuthorName     string    `json:"author_name"`
	AuthorLastName string    `json:"author_last_name,omitempty"`
	AuthorEmail    string    `json:"author_email,omitempty"`
	MediaURL       string    `json:"media_url,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
