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

// Package twitter reads a Twitter bulk-export archive and extracts the
// normalized posts of a single day.
package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/mholt/archives"
)

// Archive provides access to an export archive's contents. The archive
// root may be the extracted folder or the original .zip file; both are
// presented as an fs.FS.
type Archive struct {
	fsys fs.FS
}

// Open opens the export archive at root on the OS filesystem.
func Open(ctx context.Context, root string) (*Archive, error) {
	fsys, err := archives.FileSystem(ctx, root, nil)
	if err != nil {
		return nil, fmt.Errorf("opening archive root: %w", err)
	}
	return &Archive{fsys: fsys}, nil
}

// NewArchive wraps an already-open file system, which must be rooted
// at the top of the export (the folder containing "data").
func NewArchive(fsys fs.FS) *Archive {
	return &Archive{fsys: fsys}
}

// tweets loads every raw record from the archive's tweets file. Each
// export wraps a JSON array in a JavaScript variable assignment, so
// the preface is consumed up to the '=' before decoding. Records are
// validated as they are decoded; the slice is owned by the caller for
// the duration of one extraction and is never cached.
func (a *Archive) tweets(ctx context.Context) ([]tweet, error) {
	file, err := a.fsys.Open(tweetsFile)
	if errors.Is(err, fs.ErrNotExist) {
		file, err = a.fsys.Open(tweetsFileAlt)
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := stripPreface(file); err != nil {
		return nil, fmt.Errorf("reading tweet file preface: %w", err)
	}

	dec := json.NewDecoder(file)

	// read array opening bracket '['
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding opening token: %w", err)
	}

	var tweets []tweet
	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var container struct {
			Tweet tweet `json:"tweet"`
		}
		if err := dec.Decode(&container); err != nil {
			return nil, fmt.Errorf("decoding tweet element: %w", err)
		}

		t := container.Tweet
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("tweet element %d: %w", len(tweets), err)
		}

		tweets = append(tweets, t)
	}

	return tweets, nil
}

// stripPreface reads from f until a '=' is encountered. (Each .js file
// in the export starts with a variable definition.)
func stripPreface(f io.Reader) error {
	b := make([]byte, 1)
	for {
		if _, err := io.ReadFull(f, b); err != nil {
			return err
		}
		if b[0] == '=' {
			return nil
		}
	}
}

const (
	tweetsFile    = "data/tweets.js"
	tweetsFileAlt = "data/tweet.js" // seen in archives from 2022
)
