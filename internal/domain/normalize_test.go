package domain

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"ChipOS Launches: The Future!", "chipos-launches-the-future"},
		{"  Spaces   collapse  ", "spaces-collapse"},
		{"Already-hyphenated --- title", "already-hyphenated-title"},
		{"ALL CAPS & SYMBOLS #@!", "all-caps-symbols"},
		{"", ""},
	}

	for _, tc := range cases {
		got := Slugify(tc.in)
		if got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyInvariants(t *testing.T) {
	t.Parallel()

	valid := regexp.MustCompile(`^[a-z0-9-]*$`)
	long := strings.Repeat("word ", 50) + "end"

	for _, in := range []string{long, "Trailing punctuation!!!", "---", "a"} {
		slug := Slugify(in)
		if !valid.MatchString(slug) {
			t.Errorf("Slugify(%q) produced invalid characters: %q", in, slug)
		}
		if len(slug) > 80 {
			t.Errorf("Slugify(%q) exceeds 80 chars: %d", in, len(slug))
		}
		if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
			t.Errorf("Slugify(%q) starts or ends with hyphen: %q", in, slug)
		}
	}

	if Slugify("ChipOS Launches: The Future!") != Slugify("ChipOS Launches: The Future!") {
		t.Error("Slugify is not deterministic")
	}
}

func TestCountWords(t *testing.T) {
	t.Parallel()

	body := "<h2>Header</h2><p>one two <strong>three</strong> four</p>"
	if got := CountWords(body); got != 5 {
		t.Errorf("CountWords = %d, want 5", got)
	}
}

func TestReadTimeMinutes(t *testing.T) {
	t.Parallel()

	words := make([]string, 400)
	for i := range words {
		words[i] = "word"
	}
	body := "<p>" + strings.Join(words, " ") + "</p>"

	if got := ReadTimeMinutes(0, CountWords(body)); got != 2 {
		t.Errorf("derived read time = %d, want 2", got)
	}
	if got := ReadTimeMinutes(7, 400); got != 7 {
		t.Errorf("supplied read time = %d, want 7", got)
	}
	if got := ReadTimeMinutes(0, 0); got != 1 {
		t.Errorf("empty body read time = %d, want 1", got)
	}
	if got := ReadTimeMinutes(0, 201); got != 2 {
		t.Errorf("201 words read time = %d, want 2", got)
	}
}

func TestClassifyTitle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		title string
		want  ArticleType
	}{
		{"Opening Keynote: PM Modi", TypeEventRecap},
		{"Leaders' Plenary Day 4", TypeEventRecap},
		{"Panel: The GPU Race", TypeAnalysis},
		{"Fireside discussion with Sam Altman", TypeAnalysis},
		{"FutureAtoms launches ChipOS", TypeFeature},
		{"Micron to unveil Sanand fab", TypeFeature},
		{"Day 2 morning briefing", TypeNewsReport},
	}

	for _, tc := range cases {
		if got := ClassifyTitle(tc.title); got != tc.want {
			t.Errorf("ClassifyTitle(%q) = %s, want %s", tc.title, got, tc.want)
		}
	}
}

func TestBuildStoredArticle(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 18, 12, 0, 0, 0, time.UTC)
	article := Article{
		Headline: "ChipOS Launches: The Future!",
		Category: "LAUNCH",
		Lede:     "A short lede.",
		Body:     "<p>one two three four</p>",
		Source:   "summit",
	}
	prov := Provenance{
		VideoID:     "abc123",
		VideoURL:    "https://www.youtube.com/watch?v=abc123",
		SummitDay:   "2026-02-18",
		ArticleType: TypeFeature,
	}

	stored := BuildStoredArticle(article, prov, "huggingface", "moonshotai/Kimi-K2.5", now)

	if stored.Slug != "chipos-launches-the-future" {
		t.Errorf("unexpected slug: %s", stored.Slug)
	}
	if stored.WordCount != 4 {
		t.Errorf("word count = %d, want 4", stored.WordCount)
	}
	if stored.ReadTime != 1 {
		t.Errorf("read time = %d, want 1", stored.ReadTime)
	}
	if stored.Content != "one two three four" {
		t.Errorf("content not stripped: %q", stored.Content)
	}
	if stored.SEOTitle != "ChipOS Launches: The Future! | India AI Summit 2026" {
		t.Errorf("unexpected seo title: %s", stored.SEOTitle)
	}
	if len(stored.Tags) != 2 || stored.Tags[0] != CampaignTag || stored.Tags[1] != "launch" {
		t.Errorf("unexpected tags: %v", stored.Tags)
	}
	if stored.Provenance.VideoID != "abc123" {
		t.Errorf("provenance lost: %+v", stored.Provenance)
	}
	if stored.Status != "published" {
		t.Errorf("unexpected status: %s", stored.Status)
	}
}

func TestBuildStoredArticleDefaultsCategoryTag(t *testing.T) {
	t.Parallel()

	stored := BuildStoredArticle(Article{Headline: "x", Body: "<p>y</p>"}, Provenance{}, "", "", time.Now())
	if stored.Tags[1] != "summit" {
		t.Errorf("empty category should tag as summit, got %v", stored.Tags)
	}
}

func TestBuildMention(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.February, 19, 9, 0, 0, 0, time.UTC)
	posted := now.Add(-3 * time.Hour)

	ig := Candidate{
		SourceID:    "17900001",
		Platform:    PlatformSocialImage,
		RawText:     "ChipOS demo at Bharat Mandapam",
		PublishedAt: posted,
		Likes:       42,
		Comments:    7,
	}
	m := BuildMention(ig, []string{"IndiaAISummit2026"}, now)
	if m.Platform != SocialInstagram {
		t.Errorf("platform = %s, want instagram", m.Platform)
	}
	if m.Likes != 42 || m.Comments != 7 {
		t.Errorf("engagement lost: %+v", m)
	}
	if !m.PublishedAt.Equal(posted) {
		t.Errorf("published at = %v, want %v", m.PublishedAt, posted)
	}

	tw := Candidate{SourceID: "99", Platform: PlatformSocialText, Title: `"ChipOS"`}
	m = BuildMention(tw, nil, now)
	if m.Platform != SocialTwitter {
		t.Errorf("platform = %s, want twitter", m.Platform)
	}
	if m.Content != `Summit mention: "ChipOS"` {
		t.Errorf("unexpected fallback content: %q", m.Content)
	}
	if !m.PublishedAt.Equal(now) {
		t.Errorf("zero published date should fall back to now, got %v", m.PublishedAt)
	}
}
