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
	"strings"
	"testing"
)

func TestRenderTextAnchorSurvivesHighlighting(t *testing.T) {
	// the expanded URL deliberately contains both '#' and '@', which
	// the hashtag/mention pass must not touch
	tw := tweet{
		FullText: "read this https://t.co/abc123 now",
		Entities: &tweetEntities{URLs: []urlEntity{{
			URL:         "https://t.co/abc123",
			ExpandedURL: "https://example.com/page#frag@section",
			DisplayURL:  "example.com/page",
		}}},
	}

	want := `read this <a href="https://example.com/page#frag@section">example.com/page</a> now`
	if got := tw.renderText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderTextHighlightsTags(t *testing.T) {
	tw := tweet{FullText: "shipping #golang with @friend today"}

	want := `shipping <span class="hashtag">#golang</span> with <span class="mention">@friend</span> today`
	if got := tw.renderText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderTextFullRewrite(t *testing.T) {
	tw := tweet{
		FullText: "new post https://t.co/abc123 #blog cc @reader",
		Entities: &tweetEntities{URLs: []urlEntity{{
			URL:         "https://t.co/abc123",
			ExpandedURL: "https://blog.example.com/2024/hello",
			DisplayURL:  "blog.example.com/2024/hello",
		}}},
	}

	want := `new post <a href="https://blog.example.com/2024/hello">blog.example.com/2024/hello</a> ` +
		`<span class="hashtag">#blog</span> cc <span class="mention">@reader</span>`
	if got := tw.renderText(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRenderTextStripsLeftoverShortLinks(t *testing.T) {
	// media attachments leave a t.co link in the text with no URL
	// entity; it is represented by the resolved media URL instead
	tw := tweet{FullText: "sunset pic https://t.co/xyz789"}

	if got := tw.renderText(); got != "sunset pic" {
		t.Errorf("Expected %q, got %q", "sunset pic", got)
	}
}

func TestRenderTextUnescapesHTMLEntities(t *testing.T) {
	tw := tweet{FullText: "ham &amp; eggs &gt; cereal"}

	if got := tw.renderText(); got != "ham & eggs > cereal" {
		t.Errorf("Expected %q, got %q", "ham & eggs > cereal", got)
	}
}

func TestRevealSmuggledMalformedPayload(t *testing.T) {
	// valid alphabet, invalid base64 length; kept verbatim
	in := "before " + smuggleOpen + "AAAAA" + smuggleClose + " after"
	if got := revealSmuggled(in); got != in {
		t.Errorf("Expected malformed payload preserved verbatim, got %q", got)
	}
}

func TestSmuggledPayloadIsOpaqueToHighlighting(t *testing.T) {
	smuggled := smuggleAnchor("https://example.com/a#b@c", "example.com/a")
	if got := highlightTags(smuggled); got != smuggled {
		t.Errorf("Expected the highlighting pass to leave the payload alone, got %q", got)
	}
	if strings.ContainsAny(smuggled, "#@<>") {
		t.Errorf("Expected no tokenizable characters in the smuggled form, got %q", smuggled)
	}
}
