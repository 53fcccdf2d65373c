// Package domain holds call entities, their validation and errors.
package domain

import (
	"errors"
	"strings"
)

const MaxChannelNameLen = 64

var (
	ErrChannelNameEmpty   = errors.New("channel name must not be empty")
	ErrChannelNameTooLong = errors.New("channel name too long")
)

type ChannelName string

// NewChannelName trims the raw input and rejects blank or over-long names.
func NewChannelName(raw string) (ChannelName, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrChannelNameEmpty
	}
	if len(name) > MaxChannelNameLen {
		return "", ErrChannelNameTooLong
	}
	return ChannelName(name), nil
}

func (c ChannelName) String() string { return string(c) }

// ValidateAppID rejects identifiers the engine could never accept.
func ValidateAppID(appID string) error {
	if appID == "" {
		return ErrInvalidAppID
	}
	for _, r := range appID {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return ErrInvalidAppID
		}
	}
	return nil
}
