// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Type representing satellite name like "G10"
type SatType string

// Type representing satellite system like 'G'
type SysType byte

// Extract satellite system from satellite name
func (p SatType) Sys() SysType {
	if len(p) == 0 {
		return 0
	}
	return SysType(p[0])
}

// Check validity of satellite system
// - 'L' is the SP3 code for low earth orbiters
func (p SysType) IsValid() bool {
	return p == 'G' || p == 'J' || p == 'E' || p == 'R' || p == 'C' || p == 'S' || p == 'L'
}

// Extract satellite number from satellite name
func (p SatType) Num() int {
	if len(p) < 2 {
		return 0
	}
	i, err := strconv.Atoi(string(p[1:]))
	if err != nil {
		return 0
	}
	return i
}

// NewSatType formats a satellite name with a zero-padded two digit number
func NewSatType(sys SysType, num int) SatType {
	return SatType(fmt.Sprintf("%c%02d", sys, num))
}

// ParseSatID reads a satellite identifier as written in SP3 files
// - A bare number or a blank system character means GPS ("1", " 1", "G 1" -> "G01")
// - System characters are case insensitive
func ParseSatID(s string) (SatType, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return "", fmt.Errorf("empty satellite id")
	}
	sys := SysType('G')
	rest := s
	if c := s[0]; c < '0' || c > '9' {
		sys = SysType(strings.ToUpper(s[:1])[0])
		rest = strings.TrimSpace(s[1:])
	}
	if !sys.IsValid() {
		return "", fmt.Errorf("invalid system character %q in %q", rune(sys), s)
	}
	num, err := strconv.Atoi(rest)
	if err != nil {
		return "", fmt.Errorf("parse sat num: %q: %w", s, err)
	}
	if num <= 0 || num > 99 {
		return "", fmt.Errorf("check satellite number %q", s)
	}
	return NewSatType(sys, num), nil
}

// Sort the list of satellite names
func Sorted(s []SatType) []SatType {
	s2 := make([]SatType, len(s))
	copy(s2, s)
	m := map[SysType]int{'G': 0, 'J': 1, 'E': 2, 'R': 3, 'C': 4, 'S': 5, 'L': 6}
	sort.Slice(s2, func(i, j int) bool {
		if m[s2[i].Sys()] == m[s2[j].Sys()] {
			return s2[i].Num() < s2[j].Num()
		} else {
			return m[s2[i].Sys()] < m[s2[j].Sys()]
		}
	})
	return s2
}
