package model

import "testing"

func TestParsePlatform_Aliases(t *testing.T) {
	cases := map[string]Platform{
		"reddit":       PlatformReddit,
		"Reddit":       PlatformReddit,
		"  REDDIT  ":   PlatformReddit,
		"twitter":      PlatformTwitter,
		"X":            PlatformTwitter,
		"x ":           PlatformTwitter,
		"hackernews":   PlatformHackerNews,
		"Hacker News":  PlatformHackerNews,
		"hacker_news":  PlatformHackerNews,
		"hn":           PlatformHackerNews,
		"\tHN\n":       PlatformHackerNews,
	}
	for raw, want := range cases {
		got, err := ParsePlatform(raw)
		if err != nil {
			t.Errorf("ParsePlatform(%q) failed: %v", raw, err)
			continue
		}
		if got != want {
			t.Errorf("ParsePlatform(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestParsePlatform_UnknownFailsLoudly(t *testing.T) {
	for _, raw := range []string{"", "mastodon", "redit"} {
		if _, err := ParsePlatform(raw); err == nil {
			t.Errorf("ParsePlatform(%q) should fail", raw)
		}
	}
}

func TestPlatforms_CanonicalOrder(t *testing.T) {
	got := Platforms()
	want := []Platform{PlatformReddit, PlatformTwitter, PlatformHackerNews}
	if len(got) != len(want) {
		t.Fatalf("expected %d platforms, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
