package clean

import "testing"

func TestNormalize_StripsURLs(t *testing.T) {
	got := Normalize("check this https://example.com/post?id=1 out")
	want := "check this out"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = Normalize("http://a.example and https://b.example")
	if got != "and" {
		t.Errorf("expected %q, got %q", "and", got)
	}
}

func TestNormalize_NewlinesAndWhitespace(t *testing.T) {
	got := Normalize("line one\nline two\n\n  spaced   out\t")
	want := "line one line two spaced out"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"already clean",
		"raw\ntext with https://example.com links  and   gaps",
		"  \n\t ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>AI is <i>useful</i>.</p>")
	// Tag boundaries become spaces; Normalize collapses them later.
	if Normalize(got) != "AI is useful ." {
		t.Errorf("unexpected stripped text: %q", Normalize(got))
	}
}

func TestStripHTML_PlainTextUntouched(t *testing.T) {
	in := "no markup here"
	if got := StripHTML(in); got != in {
		t.Errorf("expected %q unchanged, got %q", in, got)
	}
}

func TestStripHTML_Entities(t *testing.T) {
	got := Normalize(StripHTML("models &amp; datasets"))
	if got != "models & datasets" {
		t.Errorf("expected entity decoded, got %q", got)
	}
}

func TestNormalizeHTML(t *testing.T) {
	got := NormalizeHTML("<a href=\"https://example.com\">link</a>\ntext")
	if got != "link text" {
		t.Errorf("expected %q, got %q", "link text", got)
	}
}
