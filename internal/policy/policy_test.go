package policy

import "testing"

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name          string
		requesterID   string
		requesterRole string
		ownerID       string
		counsellorID  string
		want          bool
	}{
		{"owner reads own resource", "u1", "student", "u1", "", true},
		{"stranger denied", "u2", "student", "u1", "", false},
		{"admin always allowed", "u9", "admin", "u1", "", true},
		{"admin allowed even as owner", "u1", "admin", "u1", "", true},
		{"counsellor party allowed", "c1", "counsellor", "u1", "c1", true},
		{"other counsellor denied", "c2", "counsellor", "u1", "c1", false},
		{"counsellor clause ignored when resource has none", "c1", "counsellor", "u1", "", false},
		{"owner allowed on counsellor resource", "u1", "student", "u1", "c1", true},
		{"empty requester denied", "", "student", "u1", "c1", false},
		{"empty requester denied even with empty owner", "", "student", "", "", false},
		{"counsellor role without party match denied", "c1", "counsellor", "u1", "", false},
		{"student matching counsellor id allowed", "c1", "student", "u1", "c1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccess(tt.requesterID, tt.requesterRole, tt.ownerID, tt.counsellorID)
			if got != tt.want {
				t.Errorf("CanAccess(%q, %q, %q, %q) = %v, want %v",
					tt.requesterID, tt.requesterRole, tt.ownerID, tt.counsellorID, got, tt.want)
			}
		})
	}
}
