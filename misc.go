// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package tabeph

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ------------------------------------
// Mini functions
// ------------------------------------

func ToDeg(rad float64) float64 {
	return rad / PI * 180.0
}

func ToRad(deg float64) float64 {
	return deg / 180.0 * PI
}

// ------------------------------------
// Logging
// ------------------------------------

// NewLogger returns a text logger writing to w at the given level
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger used when the caller did not inject one
func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a verbosity number (0: warn, 1: info, 2 or more: debug) to a slog level
func ParseLevel(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// ------------------------------------
// For command argument parsing
// ------------------------------------

type SatVar []SatType

func (p *SatVar) Set(s string) error {
	*p = []SatType{}
	for _, a := range strings.Split(s, ",") {
		sat, err := ParseSatID(a)
		if err != nil {
			return err
		}
		*p = append(*p, sat)
	}
	return nil
}

func (p *SatVar) String() string {
	if p == nil {
		return ""
	}
	s := make([]string, len(*p))
	for i, sat := range *p {
		s[i] = string(sat)
	}
	return strings.Join(s, ",")
}

// Date and Time Parser (for command arguments)
type TimeStr time.Time

func (p *TimeStr) MarshalText() (text []byte, err error) {
	text, err = time.Time(*p).MarshalText()
	if err != nil {
		return nil, err
	}
	return text, nil
}

func (p *TimeStr) UnmarshalText(text []byte) error {
	s := string(text)
	t, err := time.Parse("2006/01/02 15:04:05", s)
	if err != nil {
		return err
	}
	*p = TimeStr(t)
	return nil
}

func NewTimeStr(t time.Time) *TimeStr {
	m := new(TimeStr)
	*m = TimeStr(t)
	return m
}

// Range solving mode (0: receive time, 1: transmit time, 2: transmit time in satellite clock)
type Mode int

const (
	AtReceiveTime Mode = iota
	AtTransmitTime
	AtTransmitSvTime
)

func (p *Mode) Set(s string) error {
	i, err := strconv.ParseInt(s, 10, 0)
	if err != nil {
		return err
	}
	if i < int64(AtReceiveTime) || i > int64(AtTransmitSvTime) {
		return fmt.Errorf("unknown mode %d", i)
	}
	*p = Mode(i)
	return nil
}

func (p *Mode) String() string {
	if p == nil {
		return ""
	}
	switch *p {
	case AtReceiveTime:
		return "RECEIVE"
	case AtTransmitTime:
		return "TRANSMIT"
	case AtTransmitSvTime:
		return "TRANSMIT_SV"
	default:
		return "UNKNOWN!"
	}
}
