// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package jvm

import (
	"strings"
)

const fallbackCharset = "UTF-8"

// DefaultCharset derives the text encoding of the host from the locale environment, the way the JVM picks
// file.encoding. getenv is usually os.Getenv.
func DefaultCharset(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		locale := getenv(name)
		if locale == "" {
			continue
		}
		if locale == "C" || locale == "POSIX" {
			return "US-ASCII"
		}
		_, codeset, found := strings.Cut(locale, ".")
		if !found {
			return fallbackCharset
		}
		codeset, _, _ = strings.Cut(codeset, "@")
		return normalizeCharset(codeset)
	}
	return fallbackCharset
}

func normalizeCharset(codeset string) string {
	switch strings.ToLower(strings.ReplaceAll(codeset, "-", "")) {
	case "utf8":
		return "UTF-8"
	case "iso88591":
		return "ISO-8859-1"
	case "iso885915":
		return "ISO-8859-15"
	case "ascii", "usascii", "ansi_x3.41968":
		return "US-ASCII"
	}
	return codeset
}
