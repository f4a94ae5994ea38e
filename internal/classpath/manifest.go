// Copyright Vespa.ai. Licensed under the terms of the Apache 2.0 license. See LICENSE in the project root.

package classpath

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	manifestName      = "META-INF/MANIFEST.MF"
	attrManifestVer   = "Manifest-Version"
	attrClassPath     = "Class-Path"
	maxManifestLine   = 72
	manifestLineBreak = "\r\n"
)

type attribute struct {
	name  string
	value string
}

// writeManifest writes attrs in jar manifest format: lines of at most 72 bytes, continued on lines starting with a
// single space, terminated by an empty line.
func writeManifest(w io.Writer, attrs []attribute) error {
	var buf bytes.Buffer
	for _, a := range attrs {
		writeManifestLine(&buf, a.name+": "+a.value)
	}
	buf.WriteString(manifestLineBreak)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeManifestLine(buf *bytes.Buffer, line string) {
	limit := maxManifestLine
	for len(line) > limit {
		cut := limit
		// never split a multi-byte character
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString(manifestLineBreak)
		buf.WriteByte(' ')
		line = line[cut:]
		limit = maxManifestLine - 1
	}
	buf.WriteString(line)
	buf.WriteString(manifestLineBreak)
}

// readManifest parses the main section of a manifest, joining continuation lines.
func readManifest(r io.Reader) (map[string]string, error) {
	attrs := make(map[string]string)
	scanner := bufio.NewScanner(r)
	var current string
	flush := func() error {
		if current == "" {
			return nil
		}
		name, value, ok := strings.Cut(current, ": ")
		if !ok {
			return fmt.Errorf("invalid manifest line: %q", current)
		}
		attrs[name] = value
		current = ""
		return nil
	}
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			break
		}
		if strings.HasPrefix(line, " ") {
			current += line[1:]
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		current = line
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return attrs, nil
}
