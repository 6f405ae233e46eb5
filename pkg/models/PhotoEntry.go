package models

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"mime"
	"strconv"
	"strings"
	"time"
)

const (
	RelEdit      = "edit"
	RelEditMedia = "edit-media"
)

type Link struct {
	Rel  string `xml:"rel,attr" json:"rel"`
	Type string `xml:"type,attr" json:"type"`
	Href string `xml:"href,attr" json:"href"`
}

type Content struct {
	Type string `xml:"type,attr" json:"type"`
	Src  string `xml:"src,attr" json:"src"`
}

type Thumbnail struct {
	URL    string `xml:"url,attr" json:"url"`
	Width  int    `xml:"width,attr" json:"width"`
	Height int    `xml:"height,attr" json:"height"`
}

/*
PhotoEntry is a read-only projection of a photo entry returned by the API.
*/
type PhotoEntry struct {
	ID         string
	PhotoID    string
	AlbumID    string
	ETag       string
	Title      string
	Summary    string
	Published  time.Time
	Updated    time.Time
	Content    Content
	Links      []Link
	Width      int64
	Height     int64
	Size       int64
	Version    string
	Timestamp  string
	Thumbnails []Thumbnail
}

// FindLink returns the first link with the given relation.
func (e PhotoEntry) FindLink(rel string) (Link, bool) {
	for _, l := range e.Links {
		if l.Rel == rel {
			return l, true
		}
	}

	return Link{}, false
}

// EditLink returns the server-advertised URL used to patch this entry.
func (e PhotoEntry) EditLink() (string, error) {
	link, ok := e.FindLink(RelEdit)

	if !ok || link.Href == "" {
		return "", fmt.Errorf("photo '%s': %w", e.PhotoID, ErrEditLinkNotFound)
	}

	return link.Href, nil
}

/*
ParsePhotoEntry builds a PhotoEntry from a response body. JSON bodies are
expected in the GData form ({"entry": {...}}), anything else is read as an
Atom document whose root element is the entry.
*/
func ParsePhotoEntry(contentType string, body []byte) (PhotoEntry, error) {
	body = bytes.TrimSpace(body)

	if len(body) == 0 {
		return PhotoEntry{}, ErrMissingEntry
	}

	if isJSON(contentType, body) {
		return parseJSONEntry(body)
	}

	return parseXMLEntry(body)
}

func isJSON(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return strings.HasSuffix(mediaType, "json")
	}

	return body[0] == '{'
}

type xmlPhotoEntry struct {
	XMLName    xml.Name      `xml:"entry"`
	ETag       string        `xml:"http://schemas.google.com/g/2005 etag,attr"`
	ID         string        `xml:"http://www.w3.org/2005/Atom id"`
	Published  string        `xml:"http://www.w3.org/2005/Atom published"`
	Updated    string        `xml:"http://www.w3.org/2005/Atom updated"`
	Title      string        `xml:"http://www.w3.org/2005/Atom title"`
	Summary    string        `xml:"http://www.w3.org/2005/Atom summary"`
	Content    Content       `xml:"http://www.w3.org/2005/Atom content"`
	Links      []Link        `xml:"http://www.w3.org/2005/Atom link"`
	PhotoID    string        `xml:"http://schemas.google.com/photos/2007 id"`
	AlbumID    string        `xml:"http://schemas.google.com/photos/2007 albumid"`
	Width      string        `xml:"http://schemas.google.com/photos/2007 width"`
	Height     string        `xml:"http://schemas.google.com/photos/2007 height"`
	Size       string        `xml:"http://schemas.google.com/photos/2007 size"`
	Version    string        `xml:"http://schemas.google.com/photos/2007 version"`
	Timestamp  string        `xml:"http://schemas.google.com/photos/2007 timestamp"`
	MediaGroup xmlMediaGroup `xml:"http://search.yahoo.com/mrss/ group"`
}

type xmlMediaGroup struct {
	Thumbnails []Thumbnail `xml:"http://search.yahoo.com/mrss/ thumbnail"`
}

func parseXMLEntry(body []byte) (PhotoEntry, error) {
	var (
		err   error
		entry xmlPhotoEntry
	)

	if err = xml.Unmarshal(body, &entry); err != nil {
		return PhotoEntry{}, fmt.Errorf("%w: %w", ErrMissingEntry, err)
	}

	return PhotoEntry{
		ID:         strings.TrimSpace(entry.ID),
		PhotoID:    strings.TrimSpace(entry.PhotoID),
		AlbumID:    strings.TrimSpace(entry.AlbumID),
		ETag:       entry.ETag,
		Title:      entry.Title,
		Summary:    entry.Summary,
		Published:  parseTime(entry.Published),
		Updated:    parseTime(entry.Updated),
		Content:    entry.Content,
		Links:      entry.Links,
		Width:      parseInt(entry.Width),
		Height:     parseInt(entry.Height),
		Size:       parseInt(entry.Size),
		Version:    strings.TrimSpace(entry.Version),
		Timestamp:  strings.TrimSpace(entry.Timestamp),
		Thumbnails: entry.MediaGroup.Thumbnails,
	}, nil
}

/*
gdText accepts both a plain JSON string and the GData {"$t": "..."} wrapper.
*/
type gdText string

func (t *gdText) UnmarshalJSON(data []byte) error {
	var (
		s       string
		wrapped struct {
			T string `json:"$t"`
		}
	)

	if err := json.Unmarshal(data, &s); err == nil {
		*t = gdText(s)
		return nil
	}

	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}

	*t = gdText(wrapped.T)
	return nil
}

type jsonPhotoEntry struct {
	ETag       gdText  `json:"gd$etag"`
	ID         gdText  `json:"id"`
	Published  gdText  `json:"published"`
	Updated    gdText  `json:"updated"`
	Title      gdText  `json:"title"`
	Summary    gdText  `json:"summary"`
	Content    Content `json:"content"`
	Links      []Link  `json:"link"`
	PhotoID    gdText  `json:"gphoto$id"`
	AlbumID    gdText  `json:"gphoto$albumid"`
	Width      gdText  `json:"gphoto$width"`
	Height     gdText  `json:"gphoto$height"`
	Size       gdText  `json:"gphoto$size"`
	Version    gdText  `json:"gphoto$version"`
	Timestamp  gdText  `json:"gphoto$timestamp"`
	MediaGroup struct {
		Thumbnails []Thumbnail `json:"media$thumbnail"`
	} `json:"media$group"`
}

func parseJSONEntry(body []byte) (PhotoEntry, error) {
	var (
		err      error
		document struct {
			Entry *jsonPhotoEntry `json:"entry"`
		}
	)

	if err = json.Unmarshal(body, &document); err != nil {
		return PhotoEntry{}, fmt.Errorf("%w: %w", ErrMissingEntry, err)
	}

	if document.Entry == nil {
		return PhotoEntry{}, ErrMissingEntry
	}

	entry := document.Entry

	return PhotoEntry{
		ID:         string(entry.ID),
		PhotoID:    string(entry.PhotoID),
		AlbumID:    string(entry.AlbumID),
		ETag:       string(entry.ETag),
		Title:      string(entry.Title),
		Summary:    string(entry.Summary),
		Published:  parseTime(string(entry.Published)),
		Updated:    parseTime(string(entry.Updated)),
		Content:    entry.Content,
		Links:      entry.Links,
		Width:      parseInt(string(entry.Width)),
		Height:     parseInt(string(entry.Height)),
		Size:       parseInt(string(entry.Size)),
		Version:    string(entry.Version),
		Timestamp:  string(entry.Timestamp),
		Thumbnails: entry.MediaGroup.Thumbnails,
	}, nil
}

// Malformed values are left zero; the entry is a presentation of what the server sent.
func parseTime(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, strings.TrimSpace(value))
	return t
}

func parseInt(value string) int64 {
	i, _ := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return i
}
