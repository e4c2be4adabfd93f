// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"regexp"
	"strings"
)

// Drive export modes.
const (
	DriveExportView     = "view"
	DriveExportDownload = "download"
)

// driveHosts are the file-sharing hosts whose share links are rewritten.
var driveHosts = map[string]bool{
	"drive.google.com": true,
	"docs.google.com":  true,
}

var (
	httpPrefix    = regexp.MustCompile(`(?i)^https?://`)
	driveFileID   = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	filePathID    = regexp.MustCompile(`/file/(?:u/\d+/)?d/([A-Za-z0-9_-]+)`)
	driveURLLoose = regexp.MustCompile(
		`(?i)^https?://(?:drive|docs)\.google\.com/(?:file/(?:u/\d+/)?d/([A-Za-z0-9_-]+)|(?:open|uc|thumbnail)\?(?:[^#]*&)?ids?=([A-Za-z0-9_-]+))`)
	looseHost = regexp.MustCompile(`(?i)^https?://((?:drive|docs)\.google\.com)`)
)

// NormalizeDriveURL rewrites a Google Drive share link into a direct view URL.
// Blank input yields nil; anything that is not a recognized share link is
// returned trimmed but otherwise unchanged.
func NormalizeDriveURL(raw string) *string {
	return normalizeDrive(raw, DriveExportView)
}

// DriveDownloadURL is NormalizeDriveURL for links that must download the file.
func DriveDownloadURL(raw string) *string {
	return normalizeDrive(raw, DriveExportDownload)
}

// NormalizeDriveURLPtr applies NormalizeDriveURL to a nullable field.
func NormalizeDriveURLPtr(raw *string) *string {
	if raw == nil {
		return nil
	}
	return NormalizeDriveURL(*raw)
}

func normalizeDrive(raw, export string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if !httpPrefix.MatchString(s) {
		return &s
	}

	u, err := url.Parse(s)
	if err != nil {
		if out, ok := looseDriveURL(s, export); ok {
			return &out
		}
		return &s
	}

	host := strings.ToLower(u.Hostname())
	if !driveHosts[host] {
		return &s
	}
	id := driveIDFromURL(u)
	if id == "" {
		return &s
	}
	out := directDriveURL(host, id, export)
	return &out
}

// driveIDFromURL extracts the file id from the known share-link shapes.
func driveIDFromURL(u *url.URL) string {
	if m := filePathID.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}

	switch strings.TrimSuffix(u.Path, "/") {
	case "/open", "/uc", "/thumbnail":
	default:
		return ""
	}

	q := u.Query()
	id := q.Get("id")
	if id == "" {
		id, _, _ = strings.Cut(q.Get("ids"), ",")
	}
	if !driveFileID.MatchString(id) {
		return ""
	}
	return id
}

// looseDriveURL is the best-effort path for strings url.Parse rejects.
func looseDriveURL(s, export string) (string, bool) {
	m := driveURLLoose.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	id := m[1]
	if id == "" {
		id = m[2]
	}
	host := strings.ToLower(looseHost.FindStringSubmatch(s)[1])
	return directDriveURL(host, id, export), true
}

func directDriveURL(host, id, export string) string {
	return "https://" + host + "/uc?export=" + export + "&id=" + id
}
