package convert

import (
	"reflect"
	"strings"
	"testing"

	"github.com/termdict/termserve/pkg/dictionary"
)

func TestParseLine(t *testing.T) {
	testCases := []struct {
		description string
		line        string
		want        dictionary.Term
		wantOK      bool
	}{
		{
			description: "plain pair",
			line:        "cloud : bulut",
			want:        dictionary.Term{English: "cloud", Turkish: "bulut"},
			wantOK:      true,
		},
		{
			description: "pair with extra padding",
			line:        "cloud computing  :  bulut bilişim",
			want:        dictionary.Term{English: "cloud computing", Turkish: "bulut bilişim"},
			wantOK:      true,
		},
		{
			description: "turkish side keeps later separator",
			line:        "personal computer : kişisel bilgisayar : PC",
			want:        dictionary.Term{English: "personal computer", Turkish: "kişisel bilgisayar : PC"},
			wantOK:      true,
		},
		{
			description: "column header",
			line:        "English Türkçe terms",
			wantOK:      false,
		},
		{
			description: "layout rule",
			line:        "-- Symbols --",
			wantOK:      false,
		},
		{
			description: "too many colons",
			line:        "a : b : c : d",
			wantOK:      false,
		},
		{
			description: "timestamp noise",
			line:        "10:30 oturum kaydı",
			wantOK:      false,
		},
		{
			description: "blank line",
			line:        "   ",
			wantOK:      false,
		},
		{
			description: "no separator",
			line:        "cloud bulut",
			wantOK:      false,
		},
		{
			description: "empty english side",
			line:        " : bulut",
			wantOK:      false,
		},
		{
			description: "empty turkish side",
			line:        "cloud :  ",
			wantOK:      false,
		},
		{
			description: "oversized field dropped",
			line:        strings.Repeat("a", 200) + " : bulut",
			wantOK:      false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, ok := ParseLine(tc.line)
			if ok != tc.wantOK {
				t.Fatalf("ParseLine(%q) ok = %v, want %v", tc.line, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("ParseLine(%q) = %+v, want %+v", tc.line, got, tc.want)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	page := strings.Join([]string{
		"TBD Bilişim Terimleri Sözlüğü",
		"English Türkçe terms",
		"",
		"abort : durdurmak",
		"access : erişim",
		"-- Numbers --",
		"3G üçüncü nesil",
	}, "\n")

	got := ParseText(page)
	want := []dictionary.Term{
		{English: "abort", Turkish: "durdurmak"},
		{English: "access", Turkish: "erişim"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseText = %+v, want %+v", got, want)
	}
}
