package handler

import (
	"testing"

	"github.com/renthub/condo-rental/internal/model"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantUser string
		wantMsg  string
	}{
		{"valid", "Alice", "secret1", "alice", ""},
		{"trims and lowercases", "  Bob  ", "longenough", "bob", ""},
		{"empty username", "   ", "secret1", "", "username required"},
		{"short password", "carol", "five5", "", "password must be at least 6 characters"},
		{"exactly six chars", "dave", "sixsix", "dave", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, msg := validateCredentials(tt.username, tt.password)
			if user != tt.wantUser {
				t.Errorf("username = %q, want %q", user, tt.wantUser)
			}
			if msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"100", 100, false},
		{" 249.99 ", 249.99, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parsePrice(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePrice(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestToListingResp(t *testing.T) {
	img := "abc.png"
	l := model.Listing{
		ID:        3,
		Name:      "Sea Breeze",
		Location:  "Miami",
		Price:     150,
		Status:    model.ListingStatusAvailable,
		ImageFile: &img,
	}
	resp := toListingResp(l)
	if resp.ID != 3 || resp.Name != "Sea Breeze" || resp.Location != "Miami" || resp.Price != 150 {
		t.Errorf("unexpected mapping: %+v", resp)
	}
	if resp.ImageURL == nil || *resp.ImageURL != "/images/abc.png" {
		t.Errorf("ImageURL = %v, want /images/abc.png", resp.ImageURL)
	}

	l.ImageFile = nil
	if resp := toListingResp(l); resp.ImageURL != nil {
		t.Errorf("ImageURL = %v for listing without image, want nil", resp.ImageURL)
	}
}
