package cleaner

import "testing"

func TestPolicyRemove(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		flags  Value
		want   bool
	}{
		{"owners removes renter phrase", KeepOwners, Text("resident, likely renting"), true},
		{"owners removes mixed-case renter", KeepOwners, Text("Resident, Likely Renting"), true},
		{"owners removes bare renter", KeepOwners, Text("renter"), true},
		{"owners removes embedded phrase", KeepOwners, Text("verified; likely renting; active"), true},
		{"owners keeps owner flags", KeepOwners, Text("likely owner, resident"), false},
		{"renters removes likely owner", KeepRenters, Text("Likely Owner"), true},
		{"renters removes owner family", KeepRenters, Text("likely owner, family"), true},
		{"renters keeps renter flags", KeepRenters, Text("likely renting"), false},
		{"missing flags never removed by owners", KeepOwners, Missing, false},
		{"missing flags never removed by renters", KeepRenters, Missing, false},
		{"empty flags never removed", KeepOwners, Text(""), false},
		{"unrelated flags kept", KeepOwners, Text("verified number"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Remove(tt.flags); got != tt.want {
				t.Errorf("%v.Remove(%+v) = %v, want %v", tt.policy, tt.flags, got, tt.want)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"owners", KeepOwners, false},
		{"keep-owners", KeepOwners, false},
		{"Renters", KeepRenters, false},
		{"keep-renters", KeepRenters, false},
		{"", KeepOwners, false},
		{"landlords", KeepOwners, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
