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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// tweet is one raw record from the export archive's tweets file.
// Records are immutable once loaded; loading validates the fields the
// pipeline depends on so nothing downstream sees a zero-shaped record.
type tweet struct {
	CreatedAt            string            `json:"created_at"`
	DisplayTextRange     []transInt        `json:"display_text_range"`
	Entities             *tweetEntities    `json:"entities,omitempty"`
	ExtendedEntities     *extendedEntities `json:"extended_entities,omitempty"`
	FavoriteCount        transInt          `json:"favorite_count"`
	Favorited            bool              `json:"favorited"`
	FullText             string            `json:"full_text"` // tweet_mode=extended
	InReplyToScreenName  string            `json:"in_reply_to_screen_name,omitempty"`
	InReplyToStatusIDStr string            `json:"in_reply_to_status_id_str,omitempty"`
	InReplyToUserIDStr   string            `json:"in_reply_to_user_id_str,omitempty"`
	Lang                 string            `json:"lang"`
	RetweetCount         transInt          `json:"retweet_count"`
	Retweeted            bool              `json:"retweeted"` // always false in exports, even for retweets
	Source               string            `json:"source"`
	Text                 string            `json:"text"` // truncated legacy field (see FullText)
	TweetID              transInt          `json:"id"`
	TweetIDStr           string            `json:"id_str"`
	Truncated            bool              `json:"truncated"`

	createdAtParsed time.Time
}

// validate checks the fields the pipeline requires and parses the
// creation timestamp. It must be called once per decoded record.
func (t *tweet) validate() error {
	if t.TweetIDStr == "" {
		return errors.New("record has no id_str")
	}
	if t.CreatedAt == "" {
		return errors.New("record has no created_at")
	}
	var err error
	t.createdAtParsed, err = time.Parse("Mon Jan 2 15:04:05 -0700 2006", t.CreatedAt)
	if err != nil {
		return fmt.Errorf("parsing created_at time: %w", err)
	}
	return nil
}

// rawText returns the text of the tweet without any entity rewriting.
func (t *tweet) rawText() string {
	if t.FullText != "" {
		return t.FullText
	}
	return t.Text
}

// isRetweet reports whether the tweet is a retweet. The export always
// sets "retweeted" to false, even when full_text clearly shows a
// retweet by prefixing it with "RT @", so the prefix is the signal.
func (t *tweet) isRetweet() bool {
	if t.Retweeted {
		return true
	}
	return strings.HasPrefix(t.rawText(), "RT @")
}

// isReply reports whether the tweet replies to another status.
func (t *tweet) isReply() bool {
	return t.InReplyToStatusIDStr != ""
}

// quotesSelf reports whether any of the tweet's linked URLs expand to
// a status link on the same platform. Those are quote-tweets and are
// excluded from day extraction.
func (t *tweet) quotesSelf() bool {
	if t.Entities == nil {
		return false
	}
	for _, ent := range t.Entities.URLs {
		if isSameNetworkLink(ent.ExpandedURL) {
			return true
		}
	}
	return false
}

// isSameNetworkLink reports whether link points at a tweet on the
// platform itself (twitter.com or its x.com rename).
func isSameNetworkLink(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	return host == "twitter.com" || host == "x.com"
}

type tweetEntities struct {
	Hashtags     []hashtagEntity     `json:"hashtags"`
	Symbols      []symbolEntity      `json:"symbols"`
	UserMentions []userMentionEntity `json:"user_mentions"`
	URLs         []urlEntity         `json:"urls"`
}

type hashtagEntity struct {
	Indices []transInt `json:"indices"`
	Text    string     `json:"text"`
}

type symbolEntity struct {
	Indices []transInt `json:"indices"`
	Text    string     `json:"text"`
}

type userMentionEntity struct {
	Name       string     `json:"name"`
	ScreenName string     `json:"screen_name"`
	Indices    []transInt `json:"indices"`
	IDStr      string     `json:"id_str"`
	ID         transInt   `json:"id"`
}

type urlEntity struct {
	URL         string     `json:"url"`
	ExpandedURL string     `json:"expanded_url"`
	DisplayURL  string     `json:"display_url"`
	Indices     []transInt `json:"indices"`
}

type extendedEntities struct {
	Media []*mediaEntity `json:"media"`
}

type mediaEntity struct {
	DisplayURL    string     `json:"display_url"`
	ExpandedURL   string     `json:"expanded_url"`
	Indices       []transInt `json:"indices"`
	MediaID       transInt   `json:"id"`
	MediaIDStr    string     `json:"id_str"`
	MediaURL      string     `json:"media_url"`
	MediaURLHTTPS string     `json:"media_url_https"`
	Type          string     `json:"type"` // photo|video|animated_gif
	URL           string     `json:"url"`
	VideoInfo     *videoInfo `json:"video_info,omitempty"`
}

type videoInfo struct {
	AspectRatio    []transFloat   `json:"aspect_ratio"`
	DurationMillis transInt       `json:"duration_millis"`
	Variants       []videoVariant `json:"variants"`
}

type videoVariant struct {
	Bitrate     transInt `json:"bitrate,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	URL         string   `json:"url"`
}

// transInt is an integer that could be unmarshaled from a string.
// The export archive uses string values for fields that are numeric
// elsewhere.
type transInt int64

func (ti *transInt) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("no value")
	}
	b = bytes.Trim(b, "\"")
	var i int64
	if err := json.Unmarshal(b, &i); err != nil {
		return err
	}
	*ti = transInt(i)
	return nil
}

// transFloat is like transInt but for floats.
type transFloat float64

func (tf *transFloat) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("no value")
	}
	b = bytes.Trim(b, "\"")
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*tf = transFloat(f)
	return nil
}
