// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestNormalizeDriveURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *string
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
		{
			name:  "file view link",
			input: "https://drive.google.com/file/d/ABC123/view",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=ABC123"),
		},
		{
			name:  "file link with sharing query",
			input: "  https://drive.google.com/file/d/1a-B_c/view?usp=sharing  ",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=1a-B_c"),
		},
		{
			name:  "file link with account segment",
			input: "https://drive.google.com/file/u/0/d/XYZ/view",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=XYZ"),
		},
		{
			name:  "open with id",
			input: "https://drive.google.com/open?id=OPEN1",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=OPEN1"),
		},
		{
			name:  "uc download becomes view",
			input: "https://drive.google.com/uc?export=download&id=UC1",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=UC1"),
		},
		{
			name:  "thumbnail with ids list",
			input: "https://drive.google.com/thumbnail?ids=T1,T2&sz=w400",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=T1"),
		},
		{
			name:  "docs host",
			input: "https://docs.google.com/uc?id=DOC1",
			want:  StringPtr("https://docs.google.com/uc?export=view&id=DOC1"),
		},
		{
			name:  "uppercase host and scheme",
			input: "HTTPS://DRIVE.GOOGLE.COM/file/d/UP/view",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=UP"),
		},
		{
			name:  "drive folder is left alone",
			input: "https://drive.google.com/drive/folders/FOLDER",
			want:  StringPtr("https://drive.google.com/drive/folders/FOLDER"),
		},
		{
			name:  "google form is left alone",
			input: "https://docs.google.com/forms/d/e/FORM/viewform",
			want:  StringPtr("https://docs.google.com/forms/d/e/FORM/viewform"),
		},
		{
			name:  "open without id",
			input: "https://drive.google.com/open",
			want:  StringPtr("https://drive.google.com/open"),
		},
		{
			name:  "unrecognized host",
			input: "https://example.com/file/d/ABC/view",
			want:  StringPtr("https://example.com/file/d/ABC/view"),
		},
		{
			name:  "plain text",
			input: "about us",
			want:  StringPtr("about us"),
		},
		{
			name:  "relative path",
			input: " /images/hero.jpg ",
			want:  StringPtr("/images/hero.jpg"),
		},
		{
			name:  "unparsable drive link falls back to pattern",
			input: "https://drive.google.com/file/d/BAD1/view%zz",
			want:  StringPtr("https://drive.google.com/uc?export=view&id=BAD1"),
		},
		{
			name:  "unparsable other link is returned trimmed",
			input: " https://exa mple.com/%zz ",
			want:  StringPtr("https://exa mple.com/%zz"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDriveURL(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("NormalizeDriveURL(%q) = %q, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("NormalizeDriveURL(%q) = nil, want %q", tt.input, *tt.want)
			}
			if *got != *tt.want {
				t.Errorf("NormalizeDriveURL(%q) = %q, want %q", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestNormalizeDriveURL_Idempotent(t *testing.T) {
	inputs := []string{
		"https://drive.google.com/file/d/ABC123/view",
		"https://drive.google.com/open?id=X",
		"https://docs.google.com/thumbnail?ids=A,B",
		"https://drive.google.com/file/d/BAD1/view%zz",
		"https://example.com/a?b=c",
		"about us",
		"  padded  ",
		"mailto:someone@example.com",
	}

	for _, in := range inputs {
		once := NormalizeDriveURL(in)
		if once == nil {
			t.Fatalf("NormalizeDriveURL(%q) = nil", in)
		}
		twice := NormalizeDriveURL(*once)
		if twice == nil || *twice != *once {
			t.Errorf("not idempotent for %q: %q then %v", in, *once, twice)
		}
	}
}

func TestDriveDownloadURL(t *testing.T) {
	got := DriveDownloadURL("https://drive.google.com/file/d/PDF9/view?usp=share_link")
	want := "https://drive.google.com/uc?export=download&id=PDF9"
	if got == nil || *got != want {
		t.Fatalf("DriveDownloadURL = %v, want %q", got, want)
	}

	again := DriveDownloadURL(*got)
	if again == nil || *again != want {
		t.Errorf("DriveDownloadURL not idempotent: %v", again)
	}

	if got := DriveDownloadURL(""); got != nil {
		t.Errorf("DriveDownloadURL(\"\") = %q, want nil", *got)
	}
}

func TestNormalizeDriveURLPtr(t *testing.T) {
	if got := NormalizeDriveURLPtr(nil); got != nil {
		t.Errorf("NormalizeDriveURLPtr(nil) = %q, want nil", *got)
	}
	got := NormalizeDriveURLPtr(StringPtr("https://drive.google.com/file/d/P/view"))
	if got == nil || *got != "https://drive.google.com/uc?export=view&id=P" {
		t.Errorf("NormalizeDriveURLPtr = %v", got)
	}
}
