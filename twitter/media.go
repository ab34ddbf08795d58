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

// mediaURLs returns the representative URL for each attached media
// entity, preserving entity order. Entities with no usable variant
// contribute nothing.
func (t *tweet) mediaURLs() []string {
	if t.ExtendedEntities == nil {
		return nil
	}
	var urls []string
	for _, m := range t.ExtendedEntities.Media {
		if u := m.resolvedURL(); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// resolvedURL selects the best representative URL for one media
// entity: the direct image URL for photos, and the highest-bitrate
// MP4 variant for videos and animated images.
func (m *mediaEntity) resolvedURL() string {
	switch m.Type {
	case "photo":
		if m.MediaURLHTTPS != "" {
			return m.MediaURLHTTPS
		}
		return m.MediaURL
	case "video", "animated_gif":
		return m.bestMP4()
	}
	return ""
}

// bestMP4 returns the URL of the highest-bitrate variant whose content
// type is exactly video/mp4, or "" if there is none. animated_gif
// variants report bitrate 0, so the comparison starts below zero.
func (m *mediaEntity) bestMP4() string {
	if m.VideoInfo == nil {
		return ""
	}
	best := -1
	var source string
	for _, v := range m.VideoInfo.Variants {
		if v.ContentType != "video/mp4" {
			continue
		}
		if int(v.Bitrate) > best {
			best = int(v.Bitrate)
			source = v.URL
		}
	}
	return source
}
