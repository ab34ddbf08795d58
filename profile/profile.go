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

// Package profile resolves the author metadata (avatar, display name,
// handle) that was current on a given date, from a sparse set of dated
// snapshot folders.
package profile

import (
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tweetdiary/tweetdiary/day"
	"go.uber.org/zap"
)

// Resolver looks up author metadata in a metadata folder. Snapshot
// folders are named YYYY-MM-DD for the day their contents became
// current; the set is sparse, since snapshots exist only for days the
// metadata changed. Each snapshot may hold an avatar image and/or a
// two-line text file (display name, then handle).
type Resolver struct {
	// FS is rooted at the metadata folder.
	FS fs.FS

	Log *zap.Logger
}

// Terminal defaults: a resolution that exhausts every snapshot folder
// and the global fallback files still yields a fully-populated result.
const (
	DefaultAvatarURL   = "https://abs.twimg.com/sticky/default_profile_images/default_profile_400x400.png"
	DefaultDisplayName = "Unknown"
	DefaultHandle      = "unknown"
)

// profileFile is the two-line text file inside a snapshot folder (or
// at the metadata root, as the global fallback): line 0 is the display
// name, line 1 the handle.
const profileFile = "profile.txt"

// avatarExts are the accepted avatar extensions, in priority order.
var avatarExts = []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}

// Snapshot resolves the metadata that was current on date. Avatar,
// name, and handle are resolved independently, so they may come from
// different snapshot folders for the same date.
func (r *Resolver) Snapshot(date string) day.Profile {
	folders := r.snapshotFolders()
	prof := day.Profile{
		AvatarURL:   r.resolveAvatar(folders, date),
		DisplayName: r.resolveField(folders, date, 0, DefaultDisplayName),
		Handle:      r.resolveField(folders, date, 1, DefaultHandle),
	}
	r.logger().Debug("resolved profile",
		zap.String("date", date),
		zap.Int("snapshot_folders", len(folders)),
		zap.String("handle", prof.Handle))
	return prof
}

// snapshotFolders lists the dated snapshot folder names in ascending
// order. Natural ordering is identical to lexicographic ordering for
// zero-padded ISO dates, which in turn is date order.
func (r *Resolver) snapshotFolders() []string {
	entries, err := fs.ReadDir(r.FS, ".")
	if err != nil {
		r.logger().Warn("listing metadata folder", zap.Error(err))
		return nil
	}
	var folders []string
	for _, entry := range entries {
		if entry.IsDir() && snapshotNameRE.MatchString(entry.Name()) {
			folders = append(folders, entry.Name())
		}
	}
	sort.Slice(folders, func(i, j int) bool {
		return natural.Less(folders[i], folders[j])
	})
	return folders
}

// resolveAvatar walks the fallback chain for the avatar: the nearest
// snapshot on or after date, then later snapshots if that one has no
// avatar, then a root-level avatar file, then the stock default URL.
// Snapshot and fallback avatars are returned as paths within the
// metadata folder.
func (r *Resolver) resolveAvatar(folders []string, date string) string {
	for skip := 0; skip < len(folders); skip++ {
		idx := forwardSearch(folders, date, skip)
		if idx < 0 {
			break
		}
		if p := r.avatarIn(folders[idx]); p != "" {
			return p
		}
		// this snapshot lacks an avatar; resume after it
		skip = idx
	}
	if p := r.avatarIn("."); p != "" {
		return p
	}
	return DefaultAvatarURL
}

// resolveField is resolveAvatar's counterpart for one line of the
// profile text file.
func (r *Resolver) resolveField(folders []string, date string, line int, fallback string) string {
	for skip := 0; skip < len(folders); skip++ {
		idx := forwardSearch(folders, date, skip)
		if idx < 0 {
			break
		}
		if v := r.profileLine(folders[idx], line); v != "" {
			return v
		}
		skip = idx
	}
	if v := r.profileLine(".", line); v != "" {
		return v
	}
	return fallback
}

// forwardSearch returns the index of the first folder at or after skip
// whose name is >= date, or -1. A folder named exactly date matches.
func forwardSearch(folders []string, date string, skip int) int {
	for i := skip; i < len(folders); i++ {
		if folders[i] >= date {
			return i
		}
	}
	return -1
}

// avatarIn returns the path of a non-empty avatar file in dir, trying
// each accepted extension in priority order, or "".
func (r *Resolver) avatarIn(dir string) string {
	for _, ext := range avatarExts {
		name := path.Join(dir, "avatar"+ext)
		info, err := fs.Stat(r.FS, name)
		if err != nil || info.IsDir() || info.Size() == 0 {
			continue
		}
		return name
	}
	return ""
}

// profileLine returns the given line of dir's profile text file, or ""
// if the file is absent, short, or blank at that line.
func (r *Resolver) profileLine(dir string, line int) string {
	data, err := fs.ReadFile(r.FS, path.Join(dir, profileFile))
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if line >= len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line])
}

func (r *Resolver) logger() *zap.Logger {
	if r.Log != nil {
		return r.Log
	}
	return day.Log.Named("profile")
}

var snapshotNameRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
