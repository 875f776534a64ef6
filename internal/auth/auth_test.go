package auth

import "testing"

func TestIsAuthorized(t *testing.T) {
	s := New([]int64{1, 2}, 0)
	if !s.IsAuthorized(1) || !s.IsAuthorized(2) {
		t.Fatal("listed users must be authorized")
	}
	if s.IsAuthorized(3) {
		t.Fatal("unlisted user must not be authorized")
	}
}

func TestSuperUserIsAlsoAuthorized(t *testing.T) {
	s := New([]int64{1}, 42)
	if !s.IsSuperUser(42) {
		t.Fatal("expected super-user")
	}
	if s.IsSuperUser(1) {
		t.Fatal("regular user must not be super-user")
	}
	if !s.IsAuthorized(42) {
		t.Fatal("super-user must pass the authorized check")
	}
}

func TestZeroSuperUser(t *testing.T) {
	s := New(nil, 0)
	if s.IsSuperUser(0) {
		t.Fatal("unset super-user must match nobody")
	}
}
