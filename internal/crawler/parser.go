// ResSearch - Bulletin Board Post Search and Ranking
// Copyright 2026 Nanashi Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nanashi-dev/ressearch

package crawler

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nanashi-dev/ressearch/internal/models"
)

// ParsedOekaki is an oekaki reference found inside a post, before the
// image has been stored.
type ParsedOekaki struct {
	ID            int32
	Title         *string
	OriginalResNo *int32
	ImageURL      string
}

// ParsedPost is one post as read off a board page.
type ParsedPost struct {
	Post   models.Post
	Oekaki *ParsedOekaki
}

// board timestamps are naive local-board time treated as UTC
const boardTimeLayout = "2006/01/02 15:04:05"

// ParsePage extracts posts from one board page. Each post lives in a
// div.res with .no, .name, .date, .id and .body children; oekaki posts
// carry an a.oekaki anchor with data attributes.
func ParsePage(html []byte) ([]ParsedPost, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var posts []ParsedPost
	var parseErr error
	doc.Find("div.res").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		p, err := parsePost(s)
		if err != nil {
			parseErr = err
			return false
		}
		posts = append(posts, p)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return posts, nil
}

func parsePost(s *goquery.Selection) (ParsedPost, error) {
	var p ParsedPost

	noText := strings.TrimSpace(s.Find(".no").First().Text())
	no, err := strconv.ParseInt(noText, 10, 32)
	if err != nil {
		return p, fmt.Errorf("invalid post number %q: %w", noText, err)
	}
	p.Post.No = int32(no)

	p.Post.NameAndTrip = strings.TrimSpace(s.Find(".name").First().Text())
	p.Post.ID = strings.TrimSpace(s.Find(".id").First().Text())

	dateText := strings.TrimSpace(s.Find(".date").First().Text())
	dt, err := time.ParseInLocation(boardTimeLayout, dateText, time.UTC)
	if err != nil {
		return p, fmt.Errorf("invalid datetime %q on post %d: %w", dateText, p.Post.No, err)
	}
	p.Post.DateTime = dt

	p.Post.MainText = bodyText(s.Find(".body").First())

	if anchor := s.Find("a.oekaki").First(); anchor.Length() > 0 {
		oekaki, err := parseOekaki(anchor)
		if err != nil {
			return p, fmt.Errorf("invalid oekaki on post %d: %w", p.Post.No, err)
		}
		p.Oekaki = oekaki
		id := oekaki.ID
		p.Post.OekakiID = &id
	}

	return p, nil
}

// bodyText flattens a post body, turning <br> elements into newlines.
func bodyText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, node *goquery.Selection) {
		if goquery.NodeName(node) == "br" {
			b.WriteString("\n")
			return
		}
		b.WriteString(node.Text())
	})
	return strings.TrimSpace(b.String())
}

func parseOekaki(anchor *goquery.Selection) (*ParsedOekaki, error) {
	idAttr, ok := anchor.Attr("data-id")
	if !ok {
		return nil, fmt.Errorf("oekaki anchor missing data-id")
	}
	id, err := strconv.ParseInt(idAttr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid oekaki id %q: %w", idAttr, err)
	}

	o := &ParsedOekaki{ID: int32(id)}

	if title, ok := anchor.Attr("title"); ok && title != "" {
		o.Title = &title
	}
	if orig, ok := anchor.Attr("data-original"); ok && orig != "" {
		n, err := strconv.ParseInt(orig, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid original res no %q: %w", orig, err)
		}
		v := int32(n)
		o.OriginalResNo = &v
	}
	if href, ok := anchor.Attr("href"); ok {
		o.ImageURL = href
	}

	return o, nil
}
