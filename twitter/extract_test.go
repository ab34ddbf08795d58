/*
	Tweetdiary
	Copyright (c) 2024 Tweetdiary authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package twitter

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"
)

// pinZone makes the date heuristic deterministic for the duration of a
// test: a host zone without DST always resolves to UTC-5.
func pinZone(t *testing.T) {
	t.Helper()
	orig := time.Local
	time.Local = time.UTC
	t.Cleanup(func() { time.Local = orig })
}

func extractorFor(tweetJSONs ...string) *Extractor {
	js := `window.YTD.tweets.part0 = [{"tweet": ` +
		strings.Join(tweetJSONs, `}, {"tweet": `) + `}]`
	return &Extractor{Archive: NewArchive(archiveFS(js))}
}

// 18:00 UTC is 13:00 at UTC-5, comfortably inside the same civil day.
func tweetJSON(id, text string, extra string) string {
	s := `{"id_str": "` + id + `", "created_at": "Mon Jan 01 18:00:00 +0000 2024", "full_text": "` + text + `"`
	if extra != "" {
		s += ", " + extra
	}
	return s + `}`
}

func TestPostsForDateClassification(t *testing.T) {
	pinZone(t)

	ex := extractorFor(
		tweetJSON("1700000000000000101", "a plain post", ""),
		tweetJSON("1700000000000000102", "a reply", `"in_reply_to_status_id_str": "42"`),
		tweetJSON("1700000000000000103", "RT @someone a retweet", ""),
		tweetJSON("1700000000000000104", "quoting myself https://t.co/q",
			`"entities": {"urls": [{"url": "https://t.co/q", "expanded_url": "https://twitter.com/me/status/42", "display_url": "twitter.com/me/status/42"}]}`),
		tweetJSON("1700000000000000105", "quoting via x.com https://t.co/r",
			`"entities": {"urls": [{"url": "https://t.co/r", "expanded_url": "https://x.com/me/status/43", "display_url": "x.com/me/status/43"}]}`),
		// previous civil day at UTC-5
		`{"id_str": "1700000000000000106", "created_at": "Mon Jan 01 02:00:00 +0000 2024", "full_text": "too early"}`,
	)

	posts, err := ex.PostsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("PostsForDate error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Expected exactly 1 post, got %d: %+v", len(posts), posts)
	}
	if posts[0].ID != "1700000000000000101" {
		t.Errorf("Expected the plain post, got %s", posts[0].ID)
	}
	if posts[0].Text != "a plain post" {
		t.Errorf("Expected text %q, got %q", "a plain post", posts[0].Text)
	}
	if posts[0].CreatedAt != "1:00 PM" {
		t.Errorf("Expected display time 1:00 PM, got %q", posts[0].CreatedAt)
	}
}

func TestPostsForDateMatchesRegardlessOfOrder(t *testing.T) {
	pinZone(t)

	// the too-early tweet first; insertion order must not affect eligibility
	ex := extractorFor(
		`{"id_str": "1700000000000000106", "created_at": "Mon Jan 01 02:00:00 +0000 2024", "full_text": "too early"}`,
		tweetJSON("1700000000000000101", "on the day", ""),
	)
	posts, err := ex.PostsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("PostsForDate error: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "1700000000000000101" {
		t.Errorf("Expected only the on-the-day post, got %+v", posts)
	}
}

func TestPostsForDateOrdering(t *testing.T) {
	pinZone(t)

	ex := extractorFor(
		tweetJSON("1700000000000000100", "first", ""),
		tweetJSON("1700000000000000300", "third", ""),
		tweetJSON("1700000000000000200", "second", ""),
	)
	posts, err := ex.PostsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("PostsForDate error: %v", err)
	}
	var ids []string
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	want := []string{"1700000000000000300", "1700000000000000200", "1700000000000000100"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected order %v, got %v", want, ids)
	}
}

func TestPostsForDateIdempotent(t *testing.T) {
	pinZone(t)

	ex := extractorFor(
		tweetJSON("1700000000000000100", "a post #tag https://t.co/abc",
			`"entities": {"urls": [{"url": "https://t.co/abc", "expanded_url": "https://example.com/x", "display_url": "example.com/x"}]}`),
		tweetJSON("1700000000000000200", "another", ""),
	)

	first, err := ex.PostsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := ex.PostsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output across runs, got %+v then %+v", first, second)
	}
}

func TestPostsForDateEmptyDay(t *testing.T) {
	pinZone(t)

	ex := extractorFor(tweetJSON("1700000000000000100", "a post", ""))
	posts, err := ex.PostsForDate(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("PostsForDate error: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("Expected no posts for an unrelated date, got %d", len(posts))
	}
}

func TestPostsForDateCounters(t *testing.T) {
	pinZone(t)

	ex := extractorFor(tweetJSON("1700000000000000100", "popular", `"favorite_count": "12", "retweet_count": "3"`))
	posts, err := ex.PostsForDate(context.Background(), "2024-01-01")
	if err != nil {
		t.Fatalf("PostsForDate error: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	if posts[0].Likes != 12 || posts[0].Retweets != 3 {
		t.Errorf("Expected likes=12 retweets=3, got likes=%d retweets=%d", posts[0].Likes, posts[0].Retweets)
	}
}
