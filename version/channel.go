package version

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Channel is a named release track of the framework repository.
type Channel string

// Channels, ordered from most to least bleeding-edge.
const (
	ChannelMaster Channel = "master"
	ChannelBeta   Channel = "beta"
	ChannelStable Channel = "stable"
)

// Channels returns the official channels in stability order.
func Channels() []Channel {
	return []Channel{ChannelMaster, ChannelBeta, ChannelStable}
}

// ParseChannel maps a branch name to an official channel. "main" is an
// alias for master.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "master", "main":
		return ChannelMaster, true
	case "beta":
		return ChannelBeta, true
	case "stable":
		return ChannelStable, true
	default:
		return "", false
	}
}

var channelCaser = cases.Title(language.English)

// DisplayName returns the channel name as shown to users, e.g. "Stable".
func (c Channel) DisplayName() string {
	return channelCaser.String(string(c))
}
