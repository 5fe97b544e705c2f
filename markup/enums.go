package markup

import (
	"fmt"
	"strings"
)

// Align is horizontal or vertical placement of an object.
// ENUM(left, right, center, top, middle, bottom)
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
	AlignTop
	AlignMiddle
	AlignBottom
)

var alignNames = [...]string{
	AlignLeft:   "left",
	AlignRight:  "right",
	AlignCenter: "center",
	AlignTop:    "top",
	AlignMiddle: "middle",
	AlignBottom: "bottom",
}

func (a Align) String() string {
	if a < 0 || int(a) >= len(alignNames) {
		return fmt.Sprintf("Align(%d)", int(a))
	}
	return alignNames[a]
}

var (
	horizontalAligns = []Align{AlignLeft, AlignRight, AlignCenter}
	verticalAligns   = []Align{AlignTop, AlignMiddle, AlignBottom}
)

// Unit of a dimension.
type Unit int

const (
	UnitPixels Unit = iota
	UnitPercent
)

func (u Unit) String() string {
	switch u {
	case UnitPixels:
		return "px"
	case UnitPercent:
		return "%"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// TagSet selects variant of default tag registrations.
// ENUM(wiki, forum)
type TagSet int

const (
	// TagSetWiki binds every built-in tag.
	TagSetWiki TagSet = iota
	// TagSetForum leaves out document level tags and wiki links.
	TagSetForum
)

var tagSetNames = map[string]TagSet{
	"wiki":  TagSetWiki,
	"forum": TagSetForum,
}

func (s TagSet) String() string {
	for name, v := range tagSetNames {
		if v == s {
			return name
		}
	}
	return fmt.Sprintf("TagSet(%d)", int(s))
}

// ParseTagSet converts configuration value to TagSet, empty value selects
// wiki set.
func ParseTagSet(name string) (TagSet, error) {
	if name == "" {
		return TagSetWiki, nil
	}
	if s, ok := tagSetNames[strings.ToLower(name)]; ok {
		return s, nil
	}
	return TagSetWiki, fmt.Errorf("%s is not a valid tag set", name)
}
