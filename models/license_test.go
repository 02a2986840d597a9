package models

import (
	"testing"
	"time"
)

func TestLicenseValidity(t *testing.T) {
	t.Parallel()

	future := time.Now().Add(48 * time.Hour)
	past := time.Now().Add(-48 * time.Hour)

	cases := []struct {
		name    string
		license License
		want    bool
	}{
		{"inactive is never valid", License{Type: LicenseTypePermanent, Active: false}, false},
		{"permanent active", License{Type: LicenseTypePermanent, Active: true}, true},
		{"trial before expiry", License{Type: LicenseTypeTrial, Active: true, ExpiresAt: &future}, true},
		{"trial after expiry", License{Type: LicenseTypeTrial, Active: true, ExpiresAt: &past}, false},
		{"trial without expiry", License{Type: LicenseTypeTrial, Active: true}, false},
	}

	for _, tc := range cases {
		if got := tc.license.IsValid(); got != tc.want {
			t.Fatalf("%s: want %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestLicenseDaysLeft(t *testing.T) {
	t.Parallel()

	if (&License{}).DaysLeft() != nil {
		t.Fatalf("license without expiry should have nil days left")
	}

	expires := time.Now().Add(10 * 24 * time.Hour)
	lic := License{Type: LicenseTypeTrial, Active: true, ExpiresAt: &expires}
	days := lic.DaysLeft()
	if days == nil {
		t.Fatalf("trial license should report days left")
	}
	if *days < 9 || *days > 10 {
		t.Fatalf("unexpected days left: %d", *days)
	}
}
