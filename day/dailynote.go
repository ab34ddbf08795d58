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

package day

import (
	"path"
	"regexp"
	"strings"
	"time"
)

// DailyNoteDate reports whether notePath names a daily-log note under
// diaryRoot and, if so, the calendar date it represents. Two path
// shapes are accepted, relative to the diary root: a flat
// "YYYY-MM-DD.md" filename, or the same nested one level under a
// purely numeric grouping folder (e.g. "2024/2024-02-01.md").
//
// A filename that matches the shape but is not a real calendar date
// (such as 2024-13-40) is not a daily-log note.
func DailyNoteDate(diaryRoot, notePath string) (string, bool) {
	root := path.Clean(diaryRoot)
	note := path.Clean(notePath)

	var rel string
	switch {
	case root == "." || root == "":
		rel = note
	case strings.HasPrefix(note, root+"/"):
		rel = note[len(root)+1:]
	default:
		return "", false
	}

	parts := strings.Split(rel, "/")
	switch len(parts) {
	case 1:
		// flat daily note
	case 2:
		if !groupFolderRE.MatchString(parts[0]) {
			return "", false
		}
		rel = parts[1]
	default:
		return "", false
	}

	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if !dailyNoteNameRE.MatchString(name) {
		return "", false
	}
	if _, err := time.Parse(DateFormat, name); err != nil {
		return "", false
	}
	return name, true
}

var (
	dailyNoteNameRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	groupFolderRE   = regexp.MustCompile(`^\d+$`)
)
