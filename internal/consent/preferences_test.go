package consent

import (
	"strings"
	"testing"
)

func TestParsePreference(t *testing.T) {
	tests := []struct {
		in      string
		want    Preference
		wantErr bool
	}{
		{in: "", want: PreferenceReject},
		{in: "reject", want: PreferenceReject},
		{in: "accept", want: PreferenceAccept},
		{in: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePreference(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInitScript(t *testing.T) {
	script := InitScript(PreferenceAccept)

	for _, key := range StorageKeys {
		if !strings.Contains(script, `"`+key+`"`) {
			t.Errorf("Script does not set %s", key)
		}
	}
	if !strings.Contains(script, `const value = "accept"`) {
		t.Error("Script does not carry the preference value")
	}
}

func TestCookies(t *testing.T) {
	cookies := Cookies("www.greggs.com", PreferenceReject)

	if len(cookies) != 2 {
		t.Fatalf("Expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if c.Domain != "www.greggs.com" || c.Path != "/" || c.Value != "reject" {
			t.Errorf("Unexpected cookie %+v", c)
		}
	}
}

func TestStateHasConsent(t *testing.T) {
	tests := []struct {
		name  string
		state string
		want  bool
	}{
		{
			name:  "onetrust cookie",
			state: `{"cookies":[{"name":"session","value":"x"},{"name":"OptanonAlertBoxClosed","value":"2024-01-01"}],"origins":[]}`,
			want:  true,
		},
		{
			name:  "local storage key",
			state: `{"cookies":[],"origins":[{"origin":"https://www.greggs.com","localStorage":[{"name":"cookie-consent","value":"reject"}]}]}`,
			want:  true,
		},
		{
			name:  "no consent record",
			state: `{"cookies":[{"name":"session","value":"x"}],"origins":[{"origin":"https://www.greggs.com","localStorage":[{"name":"basket","value":"[]"}]}]}`,
			want:  false,
		},
		{
			name:  "empty state",
			state: `{"cookies":[],"origins":[]}`,
			want:  false,
		},
		{
			name:  "not json",
			state: `cookies=OptanonConsent`,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateHasConsent([]byte(tt.state)); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
