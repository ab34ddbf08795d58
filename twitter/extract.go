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
	"sort"

	"github.com/google/uuid"
	"github.com/tweetdiary/tweetdiary/day"
	"go.uber.org/zap"
)

// Extractor turns the raw archive records into the normalized posts of
// one day. It holds no state between calls; every extraction re-reads
// the archive.
type Extractor struct {
	Archive *Archive
	Log     *zap.Logger
}

// PostsForDate returns the day's posts in best-effort recency order.
// A post qualifies iff its timestamp lands on date in the normalized
// timezone and it is not a reply, not a retweet, and not a quote of a
// same-platform status. An unreadable or unparsable archive is an
// error; callers are expected to downgrade that to an empty day.
func (ex *Extractor) PostsForDate(ctx context.Context, date string) ([]day.Post, error) {
	log := ex.logger().With(
		zap.String("run_id", uuid.NewString()),
		zap.String("date", date))

	tweets, err := ex.Archive.tweets(ctx)
	if err != nil {
		return nil, err
	}

	posts := []day.Post{}
	for i := range tweets {
		t := &tweets[i]
		if day.EasternDate(t.createdAtParsed) != date {
			continue
		}
		if t.isReply() || t.isRetweet() || t.quotesSelf() {
			log.Debug("excluding post",
				zap.String("id", t.TweetIDStr),
				zap.Bool("reply", t.isReply()),
				zap.Bool("retweet", t.isRetweet()),
				zap.Bool("self_quote", t.quotesSelf()))
			continue
		}
		posts = append(posts, normalize(t))
	}

	// The snowflake IDs of a single account's export are equal-length,
	// monotonically increasing strings, so a descending string sort is
	// newest-first. Treat this as best-effort recency, not a guaranteed
	// chronological order.
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID > posts[j].ID
	})

	log.Info("extracted posts", zap.Int("count", len(posts)), zap.Int("scanned", len(tweets)))

	return posts, nil
}

func (ex *Extractor) logger() *zap.Logger {
	if ex.Log != nil {
		return ex.Log
	}
	return day.Log.Named("twitter")
}

// normalize maps one qualifying record to its rendered form.
func normalize(t *tweet) day.Post {
	return day.Post{
		ID:        t.TweetIDStr,
		Text:      t.renderText(),
		CreatedAt: day.EasternTime(t.createdAtParsed).Format("3:04 PM"),
		Likes:     int(t.FavoriteCount),
		Retweets:  int(t.RetweetCount),
		MediaURLs: t.mediaURLs(),
	}
}
