// Package policy decides whether an authenticated identity may act on a
// given resource. Every read or write of an ownable resource goes through
// exactly one CanAccess check before storage is touched.
package policy

import "hipis/internal/models"

// CanAccess reports whether the requester may read or mutate a resource
// owned by ownerID. counsellorID is the resource's counsellor party when it
// has one (appointments, session notes); pass "" for resources without one
// (mood entries, personal assessments).
//
// The rule is uniform across resource types:
//   - admins always pass,
//   - the owner passes,
//   - the counsellor party passes when the resource has one.
func CanAccess(requesterID, requesterRole, ownerID, counsellorID string) bool {
	if requesterRole == models.RoleAdmin {
		return true
	}
	if requesterID == "" {
		return false
	}
	if requesterID == ownerID {
		return true
	}
	return counsellorID != "" && requesterID == counsellorID
}
