/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package common

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitCSV splits comma separated tile ids. Surrounding whitespace and
// newlines around each entry are ignored, as is one trailing comma.
func SplitCSV(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ",")
	if text == "" {
		return nil, nil
	}
	return atoiAll(strings.Split(text, ","))
}

// SplitFields splits whitespace separated tile ids. Newlines are ordinary
// separators.
func SplitFields(text string) ([]int, error) {
	return atoiAll(strings.Fields(text))
}

func atoiAll(tokens []string) ([]int, error) {
	out := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		id, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("bad tile id %q", tok)
		}
		if id < 0 {
			return nil, fmt.Errorf("negative tile id %d", id)
		}
		out = append(out, id)
	}
	return out, nil
}
