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
	"encoding/base64"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// The hashtag/mention highlighting pass is generic pattern
// substitution, so anchor markup inserted before it runs must not
// contain anything it could mis-tokenize ('#' and '@' occur inside
// URLs and attributes). Generated anchors are therefore smuggled
// through that pass as base64 payloads between zero-width delimiters,
// and decoded back into literal markup afterward.
const (
	smuggleOpen  = "\u200b" // zero-width space
	smuggleClose = "\u200c" // zero-width non-joiner
)

// renderText produces the final body text of a tweet: short links are
// replaced by anchors to their expanded destinations, hashtags and
// mentions get highlight spans, and leftover bare short links are
// stripped.
func (t *tweet) renderText() string {
	txt := html.UnescapeString(t.rawText())

	if t.Entities != nil {
		for _, ent := range t.Entities.URLs {
			if ent.URL == "" || ent.ExpandedURL == "" {
				continue
			}
			txt = strings.Replace(txt, ent.URL, smuggleAnchor(ent.ExpandedURL, ent.DisplayURL), 1)
		}
	}

	txt = highlightTags(txt)
	txt = revealSmuggled(txt)
	txt = shortLinkRE.ReplaceAllString(txt, "")

	return strings.TrimSpace(txt)
}

// smuggleAnchor builds the anchor markup for a link and encodes it so
// later text passes treat it as opaque.
func smuggleAnchor(expandedURL, displayURL string) string {
	if displayURL == "" {
		displayURL = expandedURL
	}
	anchor := fmt.Sprintf("<a href=%q>%s</a>", expandedURL, displayURL)
	return smuggleOpen + base64.StdEncoding.EncodeToString([]byte(anchor)) + smuggleClose
}

// highlightTags wraps hashtag and mention tokens in highlight spans.
func highlightTags(s string) string {
	s = hashtagRE.ReplaceAllString(s, `<span class="hashtag">#$1</span>`)
	s = mentionRE.ReplaceAllString(s, `<span class="mention">@$1</span>`)
	return s
}

// revealSmuggled decodes every zero-width-delimited payload back into
// literal markup. A payload that fails to decode is left verbatim
// rather than treated as an error.
func revealSmuggled(s string) string {
	return smuggledRE.ReplaceAllStringFunc(s, func(match string) string {
		payload := strings.Trim(match, smuggleOpen+smuggleClose)
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return match
		}
		return string(decoded)
	})
}

var (
	hashtagRE  = regexp.MustCompile(`#(\w+)`)
	mentionRE  = regexp.MustCompile(`@(\w+)`)
	smuggledRE = regexp.MustCompile(smuggleOpen + `([A-Za-z0-9+/=]*)` + smuggleClose)
	// media attachments leave their short link in the visible text;
	// the attachment is already represented by its resolved media URL
	shortLinkRE = regexp.MustCompile(`https?://t\.co/\w+`)
)
