package domain

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "alice.smith+tag@example.com", "x_1%y@sub.domain.org"}
	for _, e := range valid {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q): %v", e, err)
		}
	}
	invalid := []string{"", "plainaddress", "missing@tld", "@example.com", "a b@example.com"}
	for _, e := range invalid {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) should fail", e)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("1234567"); err == nil {
		t.Error("seven characters should be rejected")
	}
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("eight characters should pass: %v", err)
	}
}

func TestDeleted(t *testing.T) {
	u := &User{}
	if u.Deleted() {
		t.Error("user without DeletedAt should not be deleted")
	}
	now := time.Now()
	u.DeletedAt = &now
	if !u.Deleted() {
		t.Error("user with DeletedAt should be deleted")
	}
}
