package youtube

import (
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// VideoID extracts the video id from the common YouTube URL forms
func VideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com", "youtube-nocookie.com":
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch {
		case segments[0] == "watch":
			id = u.Query().Get("v")
		case len(segments) >= 2 && (segments[0] == "embed" || segments[0] == "shorts" || segments[0] == "v" || segments[0] == "live"):
			id = segments[1]
		}
	default:
		return "", fmt.Errorf("not a YouTube url: %q", rawURL)
	}

	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("no video id in %q", rawURL)
	}
	return id, nil
}

// Caption is one timed line of a caption track
type Caption struct {
	Start    float64
	Duration float64
	Text     string
}

type transcript struct {
	Texts []struct {
		Start string `xml:"start,attr"`
		Dur   string `xml:"dur,attr"`
		Body  string `xml:",chardata"`
	} `xml:"text"`
}

// ErrNoCaptions is returned when a video has no caption track in the requested language
var ErrNoCaptions = errors.New("no captions found for video")

// ParseCaptions reads a timedtext transcript document
func ParseCaptions(data []byte) ([]Caption, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, ErrNoCaptions
	}

	var doc transcript
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse captions: %w", err)
	}

	captions := make([]Caption, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(strings.Join(strings.Fields(html.UnescapeString(t.Body)), " "))
		if text == "" {
			continue
		}

		start, _ := strconv.ParseFloat(t.Start, 64)
		dur, _ := strconv.ParseFloat(t.Dur, 64)
		captions = append(captions, Caption{Start: start, Duration: dur, Text: text})
	}

	if len(captions) == 0 {
		return nil, ErrNoCaptions
	}
	return captions, nil
}

// Timestamp formats seconds as M:SS, or H:MM:SS past the hour
func Timestamp(seconds float64) string {
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
