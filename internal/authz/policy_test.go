package authz

import "testing"

func TestCanModifyProject(t *testing.T) {
	tests := []struct {
		name     string
		identity Identity
		ownerID  int
		want     bool
	}{
		{"owner may modify", Identity{UserID: 7}, 7, true},
		{"other user may not", Identity{UserID: 8}, 7, false},
		{"admin may modify any", Identity{UserID: 9, IsAdmin: true}, 7, true},
		{"admin may modify own", Identity{UserID: 7, IsAdmin: true}, 7, true},
		{"zero identity may not", Identity{}, 7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModifyProject(tt.identity, tt.ownerID); got != tt.want {
				t.Fatalf("CanModifyProject(%+v, %d) = %v, want %v", tt.identity, tt.ownerID, got, tt.want)
			}
		})
	}
}

func TestCanViewAdmin(t *testing.T) {
	if CanViewAdmin(Identity{UserID: 1}) {
		t.Fatalf("non-admin must not view admin listings")
	}
	if !CanViewAdmin(Identity{UserID: 1, IsAdmin: true}) {
		t.Fatalf("admin must view admin listings")
	}
}
