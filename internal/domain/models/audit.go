package models

import "time"

// AuditAction identifies the kind of event recorded in the audit trail.
type AuditAction string

const (
	// AuditSignIn records a successful staff sign-in.
	AuditSignIn AuditAction = "sign_in"
	// AuditSignOut records a staff sign-out.
	AuditSignOut AuditAction = "sign_out"
	// AuditSessionRestored records a session restored at startup.
	AuditSessionRestored AuditAction = "session_restored"
	// AuditChangeApplied records a reconciliation event applied to the cache.
	AuditChangeApplied AuditAction = "change_applied"
	// AuditChangeDropped records a reconciliation event rejected or discarded.
	AuditChangeDropped AuditAction = "change_dropped"
)

// AuditEntry is one record in the append-only audit trail.
type AuditEntry struct {
	ID     string      `json:"id" bson:"_id"`
	Action AuditAction `json:"action" bson:"action"`
	// UserID is the staff member the entry relates to, when known.
	UserID string `json:"user_id,omitempty" bson:"userId,omitempty"`
	// EntityKind and EntityID identify the affected row for change events.
	EntityKind string    `json:"entity_kind,omitempty" bson:"entityKind,omitempty"`
	EntityID   string    `json:"entity_id,omitempty" bson:"entityId,omitempty"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"createdAt"`
}
