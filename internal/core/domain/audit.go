package domain

import "time"

// AuditRecord captures a role change for the audit trail.
type AuditRecord struct {
	ActorID      string    `json:"actorId"`
	ActorEmail   string    `json:"actorEmail"`
	TargetID     string    `json:"targetId"`
	TargetEmail  string    `json:"targetEmail"`
	PreviousRole string    `json:"previousRole"`
	NewRole      string    `json:"newRole"`
	Timestamp    time.Time `json:"timestamp"`
}
