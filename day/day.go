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

// Package day defines the records the extraction pipeline produces for
// a single calendar day, along with the civil-date normalization and
// daily-note recognition that the rest of the program shares.
package day

// Post is one social post resolved for a day, ready for rendering.
// It is created once per qualifying archive record and not mutated
// afterward; ownership passes to the rendering frontend.
type Post struct {
	// The post's unique identifier from the archive.
	ID string `json:"id"`

	// Rewritten body text. Short links have been replaced with
	// anchor markup pointing at their expanded destinations, and
	// hashtags and mentions are wrapped in highlight spans.
	Text string `json:"text"`

	// Wall-clock time of the post for display, already shifted
	// into the target timezone.
	CreatedAt string `json:"created_at"`

	Likes    int `json:"likes"`
	Retweets int `json:"retweets"`

	// Resolved media URLs, one per attached media entity, in the
	// entity's original order. May be empty.
	MediaURLs []string `json:"media_urls,omitempty"`
}

// Profile is the author metadata resolved for a day. It is always
// fully populated: each field either comes from a snapshot folder,
// a global fallback file, or a hardcoded default.
type Profile struct {
	// Either a path within the metadata folder (for snapshot or
	// fallback avatars) or an absolute URL (for the stock default).
	AvatarURL string `json:"avatar_url"`

	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
}
